package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"hvacbill/internal/config"
	"hvacbill/internal/email/noop"
	"hvacbill/internal/email/ses"
	"hvacbill/internal/handler"
	"hvacbill/internal/logger"
	"hvacbill/internal/metrics"
	"hvacbill/internal/port"
	"hvacbill/internal/render"
	"hvacbill/internal/repository/backend"
	"hvacbill/internal/router"
	"hvacbill/internal/service"
	s3storage "hvacbill/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log, cfg.Server.Environment)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer zl.Sync() //nolint:errcheck
	zap.ReplaceGlobals(zl)

	st, err := backend.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			zl.Warn("closing store", zap.Error(err))
		}
	}()
	zl.Info("record store ready", zap.String("driver", cfg.Store.Driver))

	m := metrics.New()

	// Initialize invoice archive
	var archive port.InvoiceArchive
	if cfg.Billing.ArchivePDFs {
		archive, err = s3storage.NewS3Archive(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 archive: %w", err)
		}
	}

	// Initialize email
	var mailer port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		mailer, err = ses.NewSESSender(ctx, cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		mailer = noop.NewNoopSender(zl)
	}

	renderer := render.NewRenderer(render.Letterhead{
		CompanyName:   cfg.Letterhead.CompanyName,
		BankName:      cfg.Letterhead.BankName,
		AccountNumber: cfg.Letterhead.AccountNumber,
		IFSC:          cfg.Letterhead.IFSC,
		UPI:           cfg.Letterhead.UPI,
		LogoPath:      cfg.Letterhead.LogoPath,
		FooterPath:    cfg.Letterhead.FooterPath,
	})

	// Initialize services
	customerSvc := service.NewCustomerService(st.Customers)
	technicianSvc := service.NewTechnicianService(st.Technicians)
	orderSvc := service.NewServiceOrderService(st.Services, st.Customers, st.Technicians)
	invoiceSvc := service.NewInvoiceService(
		st.Invoices, st.Customers, st.Seq, renderer, archive, mailer, m, zl,
		service.InvoiceOptions{
			DefaultHSN:       cfg.Billing.DefaultHSN,
			OverdueAfterDays: cfg.Billing.OverdueAfterDays,
			ArchivePDFs:      cfg.Billing.ArchivePDFs,
			LinkTTL:          time.Duration(cfg.S3.PresignExpiry) * time.Second,
		},
	)
	dashboardSvc := service.NewDashboardService(st.Invoices, st.Services, st.Customers)

	if cfg.Billing.OverdueSweep != "" && cfg.Billing.OverdueAfterDays > 0 {
		sweeper, err := service.NewOverdueSweeper(invoiceSvc, cfg.Billing.OverdueSweep, zl)
		if err != nil {
			return fmt.Errorf("failed to schedule overdue sweep: %w", err)
		}
		sweeper.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			sweeper.Stop(stopCtx)
		}()
	}

	// Setup router
	r := router.Setup(router.Handlers{
		Health:     handler.NewHealthHandler(st.Pinger, cfg.Store.Driver),
		Customer:   handler.NewCustomerHandler(customerSvc),
		Technician: handler.NewTechnicianHandler(technicianSvc),
		Service:    handler.NewServiceOrderHandler(orderSvc),
		Invoice:    handler.NewInvoiceHandler(invoiceSvc),
		Billing:    handler.NewBillingHandler(invoiceSvc),
		Dashboard:  handler.NewDashboardHandler(dashboardSvc),
	}, m, zl, cfg.CORS.AllowedOrigins)

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
