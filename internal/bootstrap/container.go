package bootstrap

import (
	"context"
	"log"

	"exam-proctor-be/internal/config"
	"exam-proctor-be/internal/constant"
	"exam-proctor-be/internal/controller"
	"exam-proctor-be/internal/handler"
	"exam-proctor-be/internal/pkg/logger"
	"exam-proctor-be/internal/pkg/mailer"
	"exam-proctor-be/internal/repository/memory"
	"exam-proctor-be/internal/repository/unitofwork"
	"exam-proctor-be/internal/service"
	"exam-proctor-be/internal/websocket"
	proctorEvents "exam-proctor-be/pkg/proctor/events"
	"exam-proctor-be/pkg/proctor/report"
	"exam-proctor-be/pkg/proctor/scoring"
	"exam-proctor-be/pkg/proctor/validation"

	pktNats "exam-proctor-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController   controller.ISessionController
	DetectionController controller.IDetectionController
	ReportController    controller.IReportController
	MonitorController   controller.IMonitorController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	MonitorHandler *handler.MonitorHandler
	WebSocketHub   *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		sysLogger,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.MonitorLogFilePath)
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Domain components
	engine := scoring.NewEngine()
	eventValidator := validation.NewValidator()
	reportBuilder := report.NewBuilder()
	pdfRenderer := report.NewPDFRenderer()

	liveSessions := memory.NewLiveSessionRepository()
	eventPublisher := proctorEvents.NewNatsPublisher(natsPub, sysLogger)

	// 4. Services
	publisherService := service.NewPublisherService(constant.DetectionAcceptedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		constant.DetectionAcceptedTopic,
		liveSessions,
		wsHub,
		sysLogger,
	)

	sessionService := service.NewSessionService(
		uowFactory,
		engine,
		eventPublisher,
		liveSessions,
		emailService,
		sysLogger,
		cfg.App.ClientURL,
	)
	detectionService := service.NewDetectionService(
		uowFactory,
		eventValidator,
		engine,
		publisherService,
		eventPublisher,
		sysLogger,
	)
	reportService := service.NewReportService(uowFactory, reportBuilder, pdfRenderer, sysLogger)
	monitorService := service.NewMonitorService(liveSessions, sysLogger)

	// 5. Controllers
	sessionController := controller.NewSessionController(sessionService, cfg.Upload)
	detectionController := controller.NewDetectionController(detectionService)
	reportController := controller.NewReportController(reportService)
	monitorController := controller.NewMonitorController(monitorService)

	monitorHandler := handler.NewMonitorHandler(monitorService, wsHub, wsLogger)

	return &Container{
		SessionController:   sessionController,
		DetectionController: detectionController,
		ReportController:    reportController,
		MonitorController:   monitorController,
		ConsumerService:     consumerService,
		MonitorHandler:      monitorHandler,
		WebSocketHub:        wsHub,
	}
}
