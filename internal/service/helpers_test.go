package service

import (
	"context"
	"sync"
	"time"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/auth"
	"ecommerce-api/internal/models"
)

// memStore is an in-memory stand-in for the database store. CreateOrder
// mirrors the all-or-nothing semantics of the real transaction: nothing
// is applied unless every line passes.
type memStore struct {
	mu       sync.Mutex
	seq      int64
	products map[int64]*models.Product
	orders   map[int64]*models.Order
	txns     map[int64]*models.Transaction
	clients  map[int64]*models.Client
	comments map[int64]*models.Comment
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[int64]*models.Product),
		orders:   make(map[int64]*models.Order),
		txns:     make(map[int64]*models.Transaction),
		clients:  make(map[int64]*models.Client),
		comments: make(map[int64]*models.Comment),
	}
}

func (m *memStore) nextID() int64 {
	m.seq++
	return m.seq
}

func (m *memStore) addProduct(name string, price int64, stock int) *models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &models.Product{
		ID:    m.nextID(),
		Name:  name,
		Price: price,
		Stock: stock,
	}
	m.products[p.ID] = p
	cp := *p
	return &cp
}

func (m *memStore) productStock(id int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[id].Stock
}

func copyOrder(o *models.Order) *models.Order {
	cp := *o
	cp.Products = append([]models.OrderItem(nil), o.Products...)
	return &cp
}

func (m *memStore) CreateOrder(ctx context.Context, clientID int64, lines []models.OrderLine) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order := &models.Order{
		ClientID:  clientID,
		Status:    models.OrderStatusPending,
		CreatedAt: time.Now(),
	}

	pending := make(map[int64]int)
	items := make([]models.OrderItem, 0, len(lines))
	for _, ln := range lines {
		p, ok := m.products[ln.ProductID]
		if !ok {
			return nil, apperr.Newf(apperr.NotFound, "Product with id %d not found", ln.ProductID)
		}
		if p.Stock-pending[p.ID] < ln.Quantity {
			return nil, apperr.Newf(apperr.InsufficientStock, "Insufficient stock for product %s", p.Name)
		}
		pending[p.ID] += ln.Quantity
		items = append(items, models.OrderItem{
			ProductID: p.ID,
			Quantity:  ln.Quantity,
			UnitPrice: p.Price,
			Name:      p.Name,
		})
		order.TotalAmount += p.Price * int64(ln.Quantity)
	}

	for id, qty := range pending {
		m.products[id].Stock -= qty
	}

	order.ID = m.nextID()
	for i := range items {
		items[i].ID = m.nextID()
		items[i].OrderID = order.ID
	}
	order.Products = items
	m.orders[order.ID] = order
	return copyOrder(order), nil
}

func (m *memStore) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "Order not found")
	}
	return copyOrder(o), nil
}

func (m *memStore) GetOrders(ctx context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Order
	for _, o := range m.orders {
		out = append(out, *copyOrder(o))
	}
	return out, nil
}

func (m *memStore) GetOrdersByClient(ctx context.Context, clientID int64) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Order
	for _, o := range m.orders {
		if o.ClientID == clientID {
			out = append(out, *copyOrder(o))
		}
	}
	return out, nil
}

func (m *memStore) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return apperr.New(apperr.NotFound, "Order not found")
	}
	o.Status = status
	return nil
}

func (m *memStore) CreateProduct(ctx context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.nextID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memStore) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, apperr.Newf(apperr.NotFound, "Product with id %d not found", id)
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) GetProducts(ctx context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Product
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memStore) GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; !ok {
		return apperr.Newf(apperr.NotFound, "Product with id %d not found", p.ID)
	}
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memStore) DeleteProduct(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return apperr.Newf(apperr.NotFound, "Product with id %d not found", id)
	}
	delete(m.products, id)
	return nil
}

func (m *memStore) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = m.nextID()
	t.CreatedAt = time.Now()
	cp := *t
	m.txns[t.ID] = &cp
	return nil
}

func (m *memStore) GetTransactionByID(ctx context.Context, id int64) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.txns[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "Transaction not found")
	}
	cp := *t
	return &cp, nil
}

func (m *memStore) GetTransactions(ctx context.Context) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Transaction
	for _, t := range m.txns {
		out = append(out, *t)
	}
	return out, nil
}

func (m *memStore) GetTransactionsByClient(ctx context.Context, clientID int64) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Transaction
	for _, t := range m.txns {
		if t.ClientID == clientID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memStore) MarkTransactionRefunded(ctx context.Context, id int64) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.txns[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "Transaction not found")
	}
	if t.Status != models.TransactionStatusCompleted {
		return nil, apperr.New(apperr.InvalidState, "Cannot refund a transaction that is not completed")
	}
	t.Status = models.TransactionStatusRefunded
	cp := *t
	return &cp, nil
}

func (m *memStore) CreateClient(ctx context.Context, c *models.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.nextID()
	c.CreatedAt = time.Now()
	cp := *c
	m.clients[c.ID] = &cp
	return nil
}

func (m *memStore) GetClientByID(ctx context.Context, id int64) (*models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "Client not found")
	}
	cp := *c
	return &cp, nil
}

func (m *memStore) GetClientByEmail(ctx context.Context, email string) (*models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.clients {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetClients(ctx context.Context) ([]models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Client
	for _, c := range m.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memStore) UpdateClient(ctx context.Context, c *models.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[c.ID]; !ok {
		return apperr.New(apperr.NotFound, "Client not found")
	}
	cp := *c
	m.clients[c.ID] = &cp
	return nil
}

func (m *memStore) DeleteClient(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[id]; !ok {
		return apperr.New(apperr.NotFound, "Client not found")
	}
	delete(m.clients, id)
	return nil
}

func (m *memStore) CreateComment(ctx context.Context, c *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.nextID()
	c.CreatedAt = time.Now()
	cp := *c
	m.comments[c.ID] = &cp
	return nil
}

func (m *memStore) GetApprovedCommentsByProduct(ctx context.Context, productID int64) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Comment
	for _, c := range m.comments {
		if c.ProductID == productID && c.Approved {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memStore) ApproveComment(ctx context.Context, id int64) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "Comment not found")
	}
	c.Approved = true
	cp := *c
	return &cp, nil
}

func (m *memStore) DeleteComment(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[id]; !ok {
		return apperr.New(apperr.NotFound, "Comment not found")
	}
	delete(m.comments, id)
	return nil
}

// nopPublisher drops every event.
type nopPublisher struct{}

func (nopPublisher) PublishOrderPlaced(context.Context, *models.OrderPlacedEvent) error { return nil }
func (nopPublisher) PublishOrderStatusChanged(context.Context, *models.OrderStatusChangedEvent) error {
	return nil
}
func (nopPublisher) PublishProductUpdated(context.Context, *models.ProductUpdatedEvent) error {
	return nil
}
func (nopPublisher) PublishTransactionCompleted(context.Context, *models.TransactionCompletedEvent) error {
	return nil
}
func (nopPublisher) PublishTransactionRefunded(context.Context, *models.TransactionRefundedEvent) error {
	return nil
}

// nopCache ignores cache updates.
type nopCache struct{}

func (nopCache) DeductStock(context.Context, int64, int) error { return nil }
func (nopCache) SetStock(context.Context, int64, int) error    { return nil }

var (
	adminPrincipal = auth.Principal{ID: 1000, Role: models.RoleAdmin}
	userPrincipal  = auth.Principal{ID: 7, Role: models.RoleUser}
	otherPrincipal = auth.Principal{ID: 8, Role: models.RoleUser}
)
