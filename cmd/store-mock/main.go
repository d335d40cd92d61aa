// store-mock is an in-memory stand-in for the remote TechStore REST API. It
// implements every endpoint the storefront consumes, including server-side
// catalog filtering and stock decrement on order-detail creation, so the
// whole system runs end to end without the real backend.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/techstore/storefront/pkg/models"
)

type mockClient struct {
	models.Client
	Password string `json:"-"`
}

type store struct {
	mu           sync.RWMutex
	seq          int
	products     map[int]*models.Product
	categories   map[int]*models.Category
	clients      map[int]*mockClient
	addresses    map[int]*models.Address
	orders       map[int]*models.Order
	orderDetails map[int]*models.OrderDetail
	bills        map[int]*models.Bill
	reviews      map[int]*models.Review
	logger       *logrus.Logger
}

func newStore(logger *logrus.Logger) *store {
	return &store{
		products:     make(map[int]*models.Product),
		categories:   make(map[int]*models.Category),
		clients:      make(map[int]*mockClient),
		addresses:    make(map[int]*models.Address),
		orders:       make(map[int]*models.Order),
		orderDetails: make(map[int]*models.OrderDetail),
		bills:        make(map[int]*models.Bill),
		reviews:      make(map[int]*models.Review),
		logger:       logger,
	}
}

// nextID must be called with the write lock held.
func (s *store) nextID() int {
	s.seq++
	return s.seq
}

func (s *store) seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	laptops := &models.Category{ID: s.nextID(), Name: "Laptops"}
	phones := &models.Category{ID: s.nextID(), Name: "Phones"}
	audio := &models.Category{ID: s.nextID(), Name: "Audio"}
	for _, c := range []*models.Category{laptops, phones, audio} {
		s.categories[c.ID] = c
	}

	seedProducts := []*models.Product{
		{Name: "Nebula Book 14", Description: "Thin and light 14-inch laptop", Price: 899.99, Stock: 12, CategoryID: laptops.ID, Brand: "Nebula", ImageURL: "https://img.techstore.test/nebula-book-14.jpg"},
		{Name: "Nebula Book Pro", Description: "Creator laptop with discrete GPU", Price: 1599.00, Stock: 5, CategoryID: laptops.ID, Brand: "Nebula", ImageURL: "https://img.techstore.test/nebula-book-pro.jpg"},
		{Name: "Pulse X2", Description: "Flagship phone, 256GB", Price: 749.50, Stock: 30, CategoryID: phones.ID, Brand: "Pulse", ImageURL: "https://img.techstore.test/pulse-x2.jpg"},
		{Name: "Pulse Lite", Description: "Budget phone, 128GB", Price: 249.00, Stock: 48, CategoryID: phones.ID, Brand: "Pulse", ImageURL: "https://img.techstore.test/pulse-lite.jpg"},
		{Name: "EchoBuds", Description: "Wireless earbuds with ANC", Price: 89.90, Stock: 0, CategoryID: audio.ID, Brand: "Echo", ImageURL: "https://img.techstore.test/echobuds.jpg"},
	}
	for _, p := range seedProducts {
		p.ID = s.nextID()
		s.products[p.ID] = p
	}

	admin := &mockClient{
		Client:   models.Client{Name: "Admin", Lastname: "TechStore", Email: "admin@techstore.com", Telephone: "555-0100", IsAdmin: true},
		Password: "admin123",
	}
	ana := &mockClient{
		Client:   models.Client{Name: "Ana", Lastname: "Cortez", Email: "ana@example.com", Telephone: "555-0101"},
		Password: "password123",
	}
	for _, c := range []*mockClient{admin, ana} {
		c.ID = s.nextID()
		s.clients[c.ID] = c
	}

	s.logger.WithFields(logrus.Fields{
		"products": len(s.products),
		"clients":  len(s.clients),
	}).Info("Seeded mock store")
}

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(data)
}

func respondDetail(w http.ResponseWriter, code int, detail string) {
	respondJSON(w, code, map[string]string{"detail": detail})
}

func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

// --- products ---

func (s *store) listProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, *p)
	}
	s.mu.RUnlock()
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	respondJSON(w, http.StatusOK, products)
}

func (s *store) filterProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	search := strings.ToLower(query.Get("search"))
	categoryID, _ := strconv.Atoi(query.Get("category_id"))
	minPrice, hasMin := parseFloat(query.Get("min_price"))
	maxPrice, hasMax := parseFloat(query.Get("max_price"))
	inStockOnly := query.Get("in_stock_only") == "true"

	s.mu.RLock()
	matched := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) &&
			!strings.Contains(strings.ToLower(p.Brand), search) {
			continue
		}
		if categoryID != 0 && p.CategoryID != categoryID {
			continue
		}
		if hasMin && p.Price < minPrice {
			continue
		}
		if hasMax && p.Price > maxPrice {
			continue
		}
		if inStockOnly && p.Stock <= 0 {
			continue
		}
		matched = append(matched, *p)
	}
	s.mu.RUnlock()

	switch query.Get("sort_by") {
	case "price_asc":
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case "price_desc":
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	case "name_asc":
		sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	case "name_desc":
		sort.Slice(matched, func(i, j int) bool { return matched[i].Name > matched[j].Name })
	default:
		sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	}
	respondJSON(w, http.StatusOK, matched)
}

func (s *store) getProduct(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	p, ok := s.products[pathID(r)]
	s.mu.RUnlock()
	if !ok {
		respondDetail(w, http.StatusNotFound, "Product not found")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *store) createProduct(w http.ResponseWriter, r *http.Request) {
	var create models.ProductCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	p := &models.Product{
		ID:          s.nextID(),
		Name:        create.Name,
		Description: create.Description,
		Price:       create.Price,
		Stock:       create.Stock,
		CategoryID:  create.CategoryID,
		Brand:       create.Brand,
		ImageURL:    create.ImageURL,
	}
	s.products[p.ID] = p
	s.mu.Unlock()
	respondJSON(w, http.StatusCreated, p)
}

func (s *store) updateProduct(w http.ResponseWriter, r *http.Request) {
	var update models.ProductCreate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	p, ok := s.products[pathID(r)]
	if ok {
		p.Name = update.Name
		p.Description = update.Description
		p.Price = update.Price
		p.Stock = update.Stock
		p.CategoryID = update.CategoryID
		p.Brand = update.Brand
		p.ImageURL = update.ImageURL
	}
	s.mu.Unlock()
	if !ok {
		respondDetail(w, http.StatusNotFound, "Product not found")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *store) deleteProduct(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	_, ok := s.products[pathID(r)]
	delete(s.products, pathID(r))
	s.mu.Unlock()
	if !ok {
		respondDetail(w, http.StatusNotFound, "Product not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// --- categories ---

func (s *store) listCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	categories := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, *c)
	}
	s.mu.RUnlock()
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	respondJSON(w, http.StatusOK, categories)
}

func (s *store) createCategory(w http.ResponseWriter, r *http.Request) {
	var create models.CategoryCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	c := &models.Category{ID: s.nextID(), Name: create.Name}
	s.categories[c.ID] = c
	s.mu.Unlock()
	respondJSON(w, http.StatusCreated, c)
}

func (s *store) updateCategory(w http.ResponseWriter, r *http.Request) {
	var update models.CategoryCreate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	c, ok := s.categories[pathID(r)]
	if ok {
		c.Name = update.Name
	}
	s.mu.Unlock()
	if !ok {
		respondDetail(w, http.StatusNotFound, "Category not found")
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (s *store) deleteCategory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	_, ok := s.categories[pathID(r)]
	delete(s.categories, pathID(r))
	s.mu.Unlock()
	if !ok {
		respondDetail(w, http.StatusNotFound, "Category not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// --- clients ---

func (s *store) listClients(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	clients := make([]models.Client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c.Client)
	}
	s.mu.RUnlock()
	sort.Slice(clients, func(i, j int) bool { return clients[i].ID < clients[j].ID })
	respondJSON(w, http.StatusOK, clients)
}

func (s *store) createClient(w http.ResponseWriter, r *http.Request) {
	var create models.ClientCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	for _, existing := range s.clients {
		if existing.Email == create.Email {
			s.mu.Unlock()
			respondDetail(w, http.StatusConflict, "Email already registered")
			return
		}
	}
	c := &mockClient{
		Client: models.Client{
			Name:     create.Name,
			Lastname: create.Lastname,
			Email:    create.Email,
		},
		Password: create.Password,
	}
	c.ID = s.nextID()
	s.clients[c.ID] = c
	s.mu.Unlock()
	respondJSON(w, http.StatusCreated, c.Client)
}

func (s *store) login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.Email == creds.Email && c.Password == creds.Password {
			respondJSON(w, http.StatusOK, c.Client)
			return
		}
	}
	respondDetail(w, http.StatusUnauthorized, "Invalid credentials")
}

// --- addresses ---

func (s *store) listAddresses(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	addresses := make([]models.Address, 0, len(s.addresses))
	for _, a := range s.addresses {
		addresses = append(addresses, *a)
	}
	s.mu.RUnlock()
	sort.Slice(addresses, func(i, j int) bool { return addresses[i].ID < addresses[j].ID })
	respondJSON(w, http.StatusOK, addresses)
}

func (s *store) createAddress(w http.ResponseWriter, r *http.Request) {
	var create models.AddressCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	a := &models.Address{
		ID:       s.nextID(),
		Street:   create.Street,
		Number:   create.Number,
		City:     create.City,
		ClientID: create.ClientID,
	}
	s.addresses[a.ID] = a
	s.mu.Unlock()
	respondJSON(w, http.StatusCreated, a)
}

func (s *store) updateAddress(w http.ResponseWriter, r *http.Request) {
	var update models.AddressCreate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	a, ok := s.addresses[pathID(r)]
	if ok {
		a.Street = update.Street
		a.Number = update.Number
		a.City = update.City
	}
	s.mu.Unlock()
	if !ok {
		respondDetail(w, http.StatusNotFound, "Address not found")
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (s *store) deleteAddress(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	_, ok := s.addresses[pathID(r)]
	delete(s.addresses, pathID(r))
	s.mu.Unlock()
	if !ok {
		respondDetail(w, http.StatusNotFound, "Address not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// --- orders, order details, bills ---

func (s *store) listOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	orders := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, *o)
	}
	s.mu.RUnlock()
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	respondJSON(w, http.StatusOK, orders)
}

var (
	statusNames   = map[int]string{1: "pending", 2: "shipped", 3: "delivered"}
	deliveryNames = map[int]string{1: "pickup", 2: "courier"}
	paymentNames  = map[int]string{1: "card", 2: "cash"}
)

func (s *store) createOrder(w http.ResponseWriter, r *http.Request) {
	var create models.OrderCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	if _, ok := s.bills[create.BillID]; !ok {
		s.mu.Unlock()
		respondDetail(w, http.StatusUnprocessableEntity, "Bill not found")
		return
	}
	o := &models.Order{
		ID:             s.nextID(),
		Date:           create.Date,
		Total:          create.Total,
		DeliveryMethod: deliveryNames[create.DeliveryMethod],
		Status:         statusNames[create.Status],
		ClientID:       create.ClientID,
		BillID:         create.BillID,
	}
	s.orders[o.ID] = o
	s.mu.Unlock()
	s.logger.WithFields(logrus.Fields{"order_id": o.ID, "client_id": o.ClientID}).Info("Order created")
	respondJSON(w, http.StatusCreated, o)
}

func (s *store) listOrderDetails(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	details := make([]models.OrderDetail, 0, len(s.orderDetails))
	for _, d := range s.orderDetails {
		details = append(details, *d)
	}
	s.mu.RUnlock()
	sort.Slice(details, func(i, j int) bool { return details[i].ID < details[j].ID })
	respondJSON(w, http.StatusOK, details)
}

// createOrderDetail is where stock actually moves: the mock, like the real
// backend, decrements inventory when a line lands.
func (s *store) createOrderDetail(w http.ResponseWriter, r *http.Request) {
	var create models.OrderDetailCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	if _, ok := s.orders[create.OrderID]; !ok {
		s.mu.Unlock()
		respondDetail(w, http.StatusUnprocessableEntity, "Order not found")
		return
	}
	p, ok := s.products[create.ProductID]
	if !ok {
		s.mu.Unlock()
		respondDetail(w, http.StatusUnprocessableEntity, "Product not found")
		return
	}
	if p.Stock < create.Quantity {
		s.mu.Unlock()
		respondDetail(w, http.StatusConflict, "Insufficient stock")
		return
	}
	p.Stock -= create.Quantity
	d := &models.OrderDetail{
		ID:        s.nextID(),
		Quantity:  create.Quantity,
		Price:     create.Price,
		OrderID:   create.OrderID,
		ProductID: create.ProductID,
	}
	s.orderDetails[d.ID] = d
	s.mu.Unlock()
	respondJSON(w, http.StatusCreated, d)
}

func (s *store) listBills(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	bills := make([]models.Bill, 0, len(s.bills))
	for _, b := range s.bills {
		bills = append(bills, *b)
	}
	s.mu.RUnlock()
	sort.Slice(bills, func(i, j int) bool { return bills[i].ID < bills[j].ID })
	respondJSON(w, http.StatusOK, bills)
}

func (s *store) createBill(w http.ResponseWriter, r *http.Request) {
	var create models.BillCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	b := &models.Bill{
		ID:          s.nextID(),
		BillNumber:  create.BillNumber,
		Date:        create.Date,
		Total:       create.Total,
		PaymentType: paymentNames[create.PaymentType],
		ClientID:    create.ClientID,
	}
	s.bills[b.ID] = b
	s.mu.Unlock()
	respondJSON(w, http.StatusCreated, b)
}

func (s *store) updateBill(w http.ResponseWriter, r *http.Request) {
	var update models.BillCreate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	b, ok := s.bills[pathID(r)]
	if ok {
		b.BillNumber = update.BillNumber
		b.Date = update.Date
		b.Total = update.Total
		b.PaymentType = paymentNames[update.PaymentType]
	}
	s.mu.Unlock()
	if !ok {
		respondDetail(w, http.StatusNotFound, "Bill not found")
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (s *store) deleteBill(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	_, ok := s.bills[pathID(r)]
	delete(s.bills, pathID(r))
	s.mu.Unlock()
	if !ok {
		respondDetail(w, http.StatusNotFound, "Bill not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// --- reviews ---

func (s *store) listReviewsByProduct(w http.ResponseWriter, r *http.Request) {
	productID := pathID(r)
	s.mu.RLock()
	reviews := make([]models.Review, 0)
	for _, rev := range s.reviews {
		if rev.ProductID == productID {
			reviews = append(reviews, *rev)
		}
	}
	s.mu.RUnlock()
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID < reviews[j].ID })
	respondJSON(w, http.StatusOK, reviews)
}

func (s *store) createReview(w http.ResponseWriter, r *http.Request) {
	var create models.ReviewCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	rev := &models.Review{
		ID:        s.nextID(),
		Rating:    create.Rating,
		Comment:   create.Comment,
		ProductID: create.ProductID,
	}
	s.reviews[rev.ID] = rev
	s.mu.Unlock()
	respondJSON(w, http.StatusCreated, rev)
}

func (s *store) updateReview(w http.ResponseWriter, r *http.Request) {
	var update models.ReviewCreate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	rev, ok := s.reviews[pathID(r)]
	if ok {
		rev.Rating = update.Rating
		rev.Comment = update.Comment
	}
	s.mu.Unlock()
	if !ok {
		respondDetail(w, http.StatusNotFound, "Review not found")
		return
	}
	respondJSON(w, http.StatusOK, rev)
}

func (s *store) deleteReview(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	_, ok := s.reviews[pathID(r)]
	delete(s.reviews, pathID(r))
	s.mu.Unlock()
	if !ok {
		respondDetail(w, http.StatusNotFound, "Review not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func parseFloat(v string) (float64, bool) {
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (s *store) router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "store-mock"})
	}).Methods("GET")

	router.HandleFunc("/products/", s.listProducts).Methods("GET")
	router.HandleFunc("/products/", s.createProduct).Methods("POST")
	router.HandleFunc("/products/filter", s.filterProducts).Methods("GET")
	router.HandleFunc("/products/id/{id:[0-9]+}", s.getProduct).Methods("GET")
	router.HandleFunc("/products/id/{id:[0-9]+}", s.updateProduct).Methods("PUT")
	router.HandleFunc("/products/id/{id:[0-9]+}", s.deleteProduct).Methods("DELETE")

	router.HandleFunc("/categories/", s.listCategories).Methods("GET")
	router.HandleFunc("/categories/", s.createCategory).Methods("POST")
	router.HandleFunc("/categories/id/{id:[0-9]+}", s.updateCategory).Methods("PUT")
	router.HandleFunc("/categories/id/{id:[0-9]+}", s.deleteCategory).Methods("DELETE")

	router.HandleFunc("/api/v1/clients/", s.listClients).Methods("GET")
	router.HandleFunc("/api/v1/clients/", s.createClient).Methods("POST")
	router.HandleFunc("/api/v1/clients/login", s.login).Methods("POST")

	router.HandleFunc("/addresses/", s.listAddresses).Methods("GET")
	router.HandleFunc("/addresses/", s.createAddress).Methods("POST")
	router.HandleFunc("/addresses/id/{id:[0-9]+}", s.updateAddress).Methods("PUT")
	router.HandleFunc("/addresses/id/{id:[0-9]+}", s.deleteAddress).Methods("DELETE")

	router.HandleFunc("/orders/", s.listOrders).Methods("GET")
	router.HandleFunc("/orders/", s.createOrder).Methods("POST")
	router.HandleFunc("/order_details/", s.listOrderDetails).Methods("GET")
	router.HandleFunc("/order_details/", s.createOrderDetail).Methods("POST")

	router.HandleFunc("/bills/", s.listBills).Methods("GET")
	router.HandleFunc("/bills/", s.createBill).Methods("POST")
	router.HandleFunc("/bills/id/{id:[0-9]+}", s.updateBill).Methods("PUT")
	router.HandleFunc("/bills/id/{id:[0-9]+}", s.deleteBill).Methods("DELETE")

	router.HandleFunc("/reviews/product/{id:[0-9]+}", s.listReviewsByProduct).Methods("GET")
	router.HandleFunc("/reviews/", s.createReview).Methods("POST")
	router.HandleFunc("/reviews/id/{id:[0-9]+}", s.updateReview).Methods("PUT")
	router.HandleFunc("/reviews/id/{id:[0-9]+}", s.deleteReview).Methods("DELETE")

	return router
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	st := newStore(logger)
	st.seed()

	port := getEnv("STORE_MOCK_PORT", "8082")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: st.router(),
	}

	go func() {
		logger.WithField("port", port).Info("Starting mock store API")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down mock store API...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("HTTP server forced to shutdown")
	}

	logger.Info("Mock store API stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
