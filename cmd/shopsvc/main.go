package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	"github.com/shopspring/decimal"

	config "github.com/clickbuy/shop-services/configs"
	nats "github.com/clickbuy/shop-services/internal/nats"
	"github.com/clickbuy/shop-services/internal/shopsvc/broker"
	"github.com/clickbuy/shop-services/internal/shopsvc/cart"
	"github.com/clickbuy/shop-services/internal/shopsvc/db"
	handlers "github.com/clickbuy/shop-services/internal/shopsvc/handlers"
	"github.com/clickbuy/shop-services/internal/shopsvc/service"
	"github.com/clickbuy/shop-services/internal/shopsvc/store"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "shop"

var instanceId string

func init() {
	instanceId = "001"
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func taxRate() decimal.Decimal {
	rate := os.Getenv("TAX_RATE")
	if rate == "" {
		return decimal.NewFromFloat(0.19) // IVA
	}
	d, err := decimal.NewFromString(rate)
	if err != nil {
		log.Fatalf("Invalid TAX_RATE value: %v", err)
	}
	return d
}

func lowStockThreshold() int {
	v := os.Getenv("LOW_STOCK_THRESHOLD")
	if v == "" {
		return 5
	}
	threshold, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("Invalid LOW_STOCK_THRESHOLD value: %v", err)
	}
	return threshold
}

func main() {

	// pg connection
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	b := broker.NewBroker(n.Conn)

	rate := taxRate()
	threshold := lowStockThreshold()

	cardStore := store.NewCardStore(dbpool)
	cardService := service.NewCardService(cardStore, b, threshold)

	transactionStore := store.NewTransactionStore(dbpool)
	checkoutService := service.NewCheckoutService(transactionStore, b, rate, threshold)

	dashboardService := service.NewDashboardService(cardStore, transactionStore, threshold)

	userStore := store.NewUserStore(dbpool)
	userService := service.NewUserService(userStore)

	cartStore := cart.NewStore()

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(cardService, checkoutService, dashboardService, userService, cartStore)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("SHOP_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
