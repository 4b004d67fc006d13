// Package mockserver is an in-memory implementation of the marketplace
// REST contract. The contract tests run against it, and cmd/mockserver
// serves it standalone for development.
package mockserver

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"marketplace_client/internal/domain"
)

// Server wires the in-memory store and JWT secret behind a gin engine.
type Server struct {
	store     *memoryStore
	jwtSecret []byte
	log       *logrus.Logger
}

// NewServer returns a server seeded with a small demo catalog.
func NewServer(jwtSecret []byte, logger *logrus.Logger) *Server {
	s := &Server{
		store:     newMemoryStore(),
		jwtSecret: jwtSecret,
		log:       logger,
	}
	s.seedProducts()
	return s
}

// Router builds the gin engine exposing the REST contract.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/auth/login", s.handleLogin)
	router.POST("/auth/register", s.handleRegister)

	router.GET("/products", s.handleListProducts)
	router.GET("/products/categories", s.handleListCategories)
	router.GET("/products/:id", s.handleGetProduct)

	protected := router.Group("/user")
	protected.Use(authMiddleware(s.jwtSecret, s.log))
	{
		protected.GET("/profile", s.handleGetProfile)
		protected.PUT("/profile", s.handleUpdateProfile)
		protected.PUT("/password", s.handleUpdatePassword)
	}

	return router
}

// AddProduct inserts a listing, filling in the ID when absent. Exposed for
// tests that need a known catalog.
func (s *Server) AddProduct(p domain.Product) domain.Product {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.store.addProduct(p)
	return p
}

func (s *Server) seedProducts() {
	seller := domain.Seller{ID: uuid.NewString(), Name: "Demo Seller", Phone: "11988887777"}
	seed := []domain.Product{
		{
			ID:          uuid.NewString(),
			Title:       "Used mountain bike",
			Description: "Aluminium frame, 21 gears, recently serviced",
			Price:       350,
			Category:    "sports",
			Images:      []string{"https://img.example.com/bike-front.jpg", "https://img.example.com/bike-side.jpg"},
			Seller:      seller,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Mid-century armchair",
			Description: "Walnut legs, reupholstered in green fabric",
			Price:       220.5,
			Category:    "furniture",
			Images:      []string{"https://img.example.com/armchair.jpg"},
			Seller:      seller,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Noise cancelling headphones",
			Description: "Over-ear, bluetooth, comes with original case",
			Price:       95,
			Category:    "electronics",
			Images:      []string{"https://img.example.com/headphones.jpg"},
			Seller:      seller,
		},
	}
	for _, p := range seed {
		s.store.addProduct(p)
	}
}
