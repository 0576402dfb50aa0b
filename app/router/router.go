package router

import (
	"net/http"
	"strings"

	"obraexpress-store/app/controller"
)

type Controllers struct {
	Catalog  *controller.CatalogController
	Dispatch *controller.DispatchController
	Cart     *controller.CartController
	Checkout *controller.CheckoutController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Catalog routes
	http.HandleFunc("/api/productos", controllers.Catalog.GetProducts)

	// Product image endpoint (GET /api/productos/:codigo/image)
	http.HandleFunc("/api/productos/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/image") {
			controllers.Catalog.GetProductImage(w, r)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Variant configurator
	http.HandleFunc("/api/configurator/resolve", controllers.Catalog.ResolveConfiguration)

	// Dispatch scheduling routes
	http.HandleFunc("/api/dispatch/next", controllers.Dispatch.NextDate)
	http.HandleFunc("/api/dispatch/holidays", controllers.Dispatch.Holidays)

	// Persisted dispatch date by product code - handles GET and PUT
	http.HandleFunc("/api/dispatch-dates/", controllers.Dispatch.HandleDispatchDate)

	// Session cart routes
	http.HandleFunc("/api/cart/", controllers.Cart.HandleCart)

	// Checkout routes
	http.HandleFunc("/api/checkout", controllers.Checkout.CreateOrder)
	http.HandleFunc("/api/checkout/simulate-payment", controllers.Checkout.SimulatePayment)
	http.HandleFunc("/api/checkout/success", controllers.Checkout.Success)

	// Voucher endpoints
	http.HandleFunc("/render/invoice", controllers.Checkout.RenderInvoice)
	http.HandleFunc("/api/orders/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/invoice") {
			controllers.Checkout.DownloadInvoice(w, r)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})
}
