package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sushihentaime/blogshelf/internal/blogservice"
	"github.com/sushihentaime/blogshelf/internal/common"
	"github.com/sushihentaime/blogshelf/internal/config"
	"github.com/sushihentaime/blogshelf/internal/mailservice"
)

type application struct {
	config      *config.Config
	logger      *slog.Logger
	blogService *blogservice.BlogService
	cache       *common.Cache
	mailService *mailservice.MailService
}

func main() {
	configPath := flag.String("config", ".env", "path to the env config file")
	flag.Parse()

	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(*configPath, logger); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// run wires the application and serves until shutdown. Everything opened here
// is released before it returns.
func run(configPath string, logger *slog.Logger) error {
	// Load the configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Open the key-value store the blogs live in
	kv, closeStore, err := config.OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open the %s store: %w", cfg.Store.Backend, err)
	}
	defer closeStore()

	app := &application{
		config: cfg,
		logger: logger,
		cache:  common.NewCache(5*time.Minute, 10*time.Minute),
	}

	// The message broker is optional. Without it no blog events are published.
	var producer common.MessageProducer
	if cfg.RabbitMQ.Enabled() {
		broker, err := common.NewMessageBroker(common.AMQPURI(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password))
		if err != nil {
			return fmt.Errorf("failed to connect to the message broker: %w", err)
		}
		defer broker.Close()

		err = common.SetupBlogExchange(broker)
		if err != nil {
			return fmt.Errorf("failed to setup the blog exchange: %w", err)
		}

		producer = broker

		if cfg.Mail.Enabled() {
			app.mailService = mailservice.NewMailService(broker, cfg.Mail.Host, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.Sender, cfg.Mail.Port, cfg.Mail.Recipients, cfg.SiteURL, logger)
			app.mailService.NotifyNewPosts()
			defer app.mailService.Close()
		}
	}

	latency := blogservice.NoLatency
	if cfg.SimulateLatency {
		latency = blogservice.DefaultLatency
	}
	app.blogService = blogservice.NewBlogService(kv, producer, logger, latency)

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to start the server: %w", err)
	}

	return nil
}
