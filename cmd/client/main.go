package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"marketplace_client/config"
	"marketplace_client/internal/clients"
	"marketplace_client/internal/domain"
	"marketplace_client/internal/session"
	"marketplace_client/internal/usecase"

	"github.com/sirupsen/logrus"
)

const usage = `Usage: client <command> [flags]

Commands:
  register         create an account and start a session
  login            start a session
  logout           end the session
  profile          show the authenticated user's profile
  update-profile   update name/phone/email/avatar
  update-password  change the account password
  products         list products (supports filters)
  product          show one product by id
  categories       list the category set
  home             fetch profile and product listing concurrently
`

type app struct {
	auth    domain.AuthUseCase
	user    domain.UserUseCase
	catalog domain.CatalogUseCase
	log     *logrus.Logger
}

func main() {
	logger := setupLogger()
	cfg := config.LoadConfig(logger)

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err == nil {
		logger.SetLevel(logLevel)
	}

	store, err := session.NewFileStore(cfg.SessionDir, logger)
	if err != nil {
		logger.Fatalf("Failed to initialise session store: %v", err)
	}

	authClient := clients.NewAPIClient(cfg.APIBaseURL, cfg.HTTPTimeout, nil, logger)
	userClient := clients.NewAPIClient(cfg.APIBaseURL, cfg.HTTPTimeout, store, logger)
	catalogClient := clients.NewAPIClient(cfg.APIBaseURL, cfg.HTTPTimeout, store, logger)

	a := &app{
		auth:    usecase.NewAuthUseCase(authClient, store, logger),
		user:    usecase.NewUserUseCase(userClient, logger),
		catalog: usecase.NewCatalogUseCase(catalogClient, logger),
		log:     logger,
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout+5*time.Second)
	defer cancel()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error (%s): %s\n", domain.KindOf(err), err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		a.auth.Logout()
		fmt.Println("Logged out.")
		return nil
	case "profile":
		return a.profile(ctx)
	case "update-profile":
		return a.updateProfile(ctx, args)
	case "update-password":
		return a.updatePassword(ctx, args)
	case "products":
		return a.products(ctx, args)
	case "product":
		return a.product(ctx, args)
	case "categories":
		return a.categories(ctx)
	case "home":
		return a.home(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	phone := fs.String("phone", "", "contact phone")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	confirm := fs.String("confirm", "", "password confirmation")
	avatar := fs.String("avatar", "", "avatar URI (optional)")
	fs.Parse(args)

	auth, err := a.auth.Register(ctx, domain.RegisterData{
		Name:            *name,
		Phone:           *phone,
		Email:           *email,
		Password:        *password,
		ConfirmPassword: *confirm,
		Avatar:          *avatar,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Registered and logged in as %s <%s>\n", auth.User.Name, auth.User.Email)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	auth, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s <%s>\n", auth.User.Name, auth.User.Email)
	return nil
}

func (a *app) profile(ctx context.Context) error {
	user, err := a.user.GetProfile(ctx)
	if err != nil {
		return err
	}
	printUser(user)
	return nil
}

func (a *app) updateProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-profile", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	phone := fs.String("phone", "", "contact phone")
	email := fs.String("email", "", "email address")
	avatar := fs.String("avatar", "", "avatar URI (optional)")
	fs.Parse(args)

	user, err := a.user.UpdateProfile(ctx, domain.UpdateProfileData{
		Name:   *name,
		Phone:  *phone,
		Email:  *email,
		Avatar: *avatar,
	})
	if err != nil {
		return err
	}
	fmt.Println("Profile updated.")
	printUser(user)
	return nil
}

func (a *app) updatePassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-password", flag.ExitOnError)
	current := fs.String("current", "", "current password")
	newPassword := fs.String("new", "", "new password")
	confirm := fs.String("confirm", "", "new password confirmation")
	fs.Parse(args)

	err := a.user.UpdatePassword(ctx, domain.UpdatePasswordData{
		CurrentPassword: *current,
		NewPassword:     *newPassword,
		ConfirmPassword: *confirm,
	})
	if err != nil {
		return err
	}
	fmt.Println("Password updated.")
	return nil
}

func (a *app) products(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	search := fs.String("search", "", "search substring")
	category := fs.String("category", "", "category filter")
	minPrice := fs.Float64("min-price", 0, "minimum price (inclusive)")
	maxPrice := fs.Float64("max-price", 0, "maximum price (inclusive)")
	fs.Parse(args)

	filters := domain.ProductFilters{Search: *search, Category: *category}
	// Only flags the user actually passed become filters, so an explicit
	// -min-price 0 is still sent.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min-price":
			filters.MinPrice = minPrice
		case "max-price":
			filters.MaxPrice = maxPrice
		}
	})

	products, err := a.catalog.ListProducts(ctx, filters)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Println("No products found.")
		return nil
	}
	for _, p := range products {
		fmt.Printf("%s  %-30s  %10.2f  %s\n", p.ID, p.Title, p.Price, p.Category)
	}
	return nil
}

func (a *app) product(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: client product <id>")
	}
	product, err := a.catalog.GetProduct(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n", product.Title, product.Category)
	fmt.Printf("  Price: %.2f  Views: %d\n", product.Price, product.Views)
	fmt.Printf("  %s\n", product.Description)
	for i, img := range product.Images {
		if i == 0 {
			fmt.Printf("  Thumbnail: %s\n", img)
		} else {
			fmt.Printf("  Image: %s\n", img)
		}
	}
	fmt.Printf("  Seller: %s (%s)\n", product.Seller.Name, product.Seller.Phone)
	return nil
}

func (a *app) categories(ctx context.Context) error {
	categories, err := a.catalog.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Println(c)
	}
	return nil
}

// home mirrors the app's opening screen: profile and listing are fetched
// concurrently and whichever succeeded is shown, even when the other
// failed.
func (a *app) home(ctx context.Context) error {
	var (
		wg          sync.WaitGroup
		user        *domain.User
		userErr     error
		products    []domain.Product
		productsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		user, userErr = a.user.GetProfile(ctx)
	}()
	go func() {
		defer wg.Done()
		products, productsErr = a.catalog.ListProducts(ctx, domain.ProductFilters{})
	}()
	wg.Wait()

	if userErr != nil {
		fmt.Printf("Profile unavailable: %s\n", userErr)
	} else {
		printUser(user)
	}
	if productsErr != nil {
		fmt.Printf("Listing unavailable: %s\n", productsErr)
	} else {
		fmt.Printf("%d products on sale:\n", len(products))
		for _, p := range products {
			fmt.Printf("  %-30s  %10.2f  %s\n", p.Title, p.Price, p.Category)
		}
	}
	if userErr != nil && productsErr != nil {
		return fmt.Errorf("both fetches failed")
	}
	return nil
}

func printUser(user *domain.User) {
	fmt.Printf("Name:  %s\n", user.Name)
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("Phone: %s\n", user.Phone)
	if user.Avatar != "" {
		fmt.Printf("Avatar: %s\n", user.Avatar)
	}
}

func setupLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	return logger
}
