package domain

import "context"

// AuthUseCase covers the unauthenticated session lifecycle operations.
// Login and Register persist the returned token into the session store;
// Logout always succeeds from the caller's point of view.
type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (*AuthSession, error)
	Register(ctx context.Context, data RegisterData) (*AuthSession, error)
	Logout()
}

// UserUseCase covers authenticated profile operations.
type UserUseCase interface {
	GetProfile(ctx context.Context) (*User, error)
	UpdateProfile(ctx context.Context, data UpdateProfileData) (*User, error)
	UpdatePassword(ctx context.Context, data UpdatePasswordData) error
}

// CatalogUseCase covers product browsing.
type CatalogUseCase interface {
	ListProducts(ctx context.Context, filters ProductFilters) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}
