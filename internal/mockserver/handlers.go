package mockserver

import (
	"net/http"
	"strconv"
	"time"

	"marketplace_client/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleLogin(c *gin.Context) {
	handlerLogger := s.log.WithField("handler", "Login")
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind login request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	acc, ok := s.store.accountByEmail(req.Email)
	if !ok {
		handlerLogger.Warnf("Login failed - user not found: %s", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)); err != nil {
		handlerLogger.Warnf("Login failed - incorrect password for %s", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := s.issueToken(acc.user.ID)
	if err != nil {
		handlerLogger.Errorf("Failed to sign token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	handlerLogger.Infof("Login successful for user ID: %s", acc.user.ID)
	c.JSON(http.StatusOK, domain.AuthSession{Token: token, User: acc.user})
}

func (s *Server) handleRegister(c *gin.Context) {
	handlerLogger := s.log.WithField("handler", "Register")
	var req domain.RegisterData
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind register request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passwords do not match"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		handlerLogger.Errorf("Failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user := domain.User{
		ID:     uuid.NewString(),
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Avatar: req.Avatar,
	}
	if !s.store.createAccount(user, hash) {
		handlerLogger.Warnf("Registration failed - email already exists: %s", req.Email)
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		handlerLogger.Errorf("Failed to sign token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	handlerLogger.Infof("Registered user ID: %s", user.ID)
	c.JSON(http.StatusCreated, domain.AuthSession{Token: token, User: user})
}

func (s *Server) handleGetProfile(c *gin.Context) {
	acc, ok := s.store.accountByID(c.GetString(userIDKey))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}
	c.JSON(http.StatusOK, acc.user)
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	handlerLogger := s.log.WithField("handler", "UpdateProfile")
	var req domain.UpdateProfileData
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind profile update: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	user, ok := s.store.updateProfile(c.GetString(userIDKey), req)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}
	handlerLogger.Infof("Profile updated for user ID: %s", user.ID)
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleUpdatePassword(c *gin.Context) {
	handlerLogger := s.log.WithField("handler", "UpdatePassword")
	var req domain.UpdatePasswordData
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind password update: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passwords do not match"})
		return
	}

	userID := c.GetString(userIDKey)
	acc, ok := s.store.accountByID(userID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.CurrentPassword)); err != nil {
		handlerLogger.Warnf("Password update rejected - wrong current password for user ID: %s", userID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		handlerLogger.Errorf("Failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	s.store.updatePasswordHash(userID, hash)
	handlerLogger.Infof("Password updated for user ID: %s", userID)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListProducts(c *gin.Context) {
	handlerLogger := s.log.WithField("handler", "ListProducts")

	filters := domain.ProductFilters{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	if raw, ok := c.GetQuery("minPrice"); ok {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minPrice"})
			return
		}
		filters.MinPrice = &price
	}
	if raw, ok := c.GetQuery("maxPrice"); ok {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maxPrice"})
			return
		}
		filters.MaxPrice = &price
	}

	products := s.store.listProducts(filters)
	handlerLogger.Debugf("Returning %d products", len(products))
	c.JSON(http.StatusOK, products)
}

func (s *Server) handleGetProduct(c *gin.Context) {
	product, ok := s.store.getProduct(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) handleListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, Categories)
}

func (s *Server) issueToken(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
