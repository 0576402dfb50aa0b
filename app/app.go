package app

import (
	"fmt"
	"log"
	"os"

	"obraexpress-store/app/controller"
	"obraexpress-store/app/router"
	"obraexpress-store/cart"
	"obraexpress-store/db"
	"obraexpress-store/pricing"
	"obraexpress-store/repository"
	"obraexpress-store/service"
)

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Load the area pricing configuration
	pricingConfig := os.Getenv("PRICING_CONFIG")
	if pricingConfig == "" {
		pricingConfig = "config/pricing.json"
	}
	if _, err := pricing.NewEngine(pricingConfig); err != nil {
		return fmt.Errorf("failed to load pricing config: %w", err)
	}

	// Base URL the PDF renderer navigates back to
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		baseURL = "http://localhost:" + port
	}

	// Initialize mail delivery. Without Gmail credentials receipts are
	// logged instead of sent.
	var mailService service.MailServiceInterface
	credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsPath != "" {
		gmailService, err := service.NewMailService(credentialsPath, os.Getenv("MAIL_FROM"))
		if err != nil {
			return err
		}
		mailService = gmailService
	} else {
		log.Println("⚠️  GOOGLE_APPLICATION_CREDENTIALS not set, receipts will be logged only")
		mailService = service.LogMailService{}
	}

	if err := service.EnsureImageCacheDir(); err != nil {
		return err
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository()
	dispatchDateRepo := repository.NewDispatchDateRepository()
	orderRepo := repository.NewOrderRepository()

	// Initialize services
	cartStore := cart.NewStore()
	invoiceService := service.NewInvoiceService(baseURL)
	checkoutService := service.NewCheckoutService(
		cartStore,
		orderRepo,
		service.NewPaymentSimulator(),
		invoiceService,
		mailService,
	)

	// Create controllers
	controllers := &router.Controllers{
		Catalog:  controller.NewCatalogController(productRepo),
		Dispatch: controller.NewDispatchController(dispatchDateRepo),
		Cart:     controller.NewCartController(cartStore, productRepo),
		Checkout: controller.NewCheckoutController(checkoutService, invoiceService),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
