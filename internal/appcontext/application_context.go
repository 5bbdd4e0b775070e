package appcontext

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/config"
	"github.com/RoyceAzure/lab/storefront/internal/infra/auth"
	"github.com/RoyceAzure/lab/storefront/internal/infra/payment"
	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ApplicationContext 取代全域singleton，所有依賴在這裡組裝後顯式往下傳
type ApplicationContext struct {
	Cf              *config.Config
	Logger          *zerolog.Logger
	DbConn          *gorm.DB
	DbDao           *db.DbDao
	RedisClient     *redis.Client
	TokenMaker      auth.ITokenMaker
	StripeClient    *payment.StripeClient
	EventProducer   producer.IOrderEventProducer
	ProductService  service.IProductService
	CustomerService service.ICustomerService
	OrderService    service.IOrderService
	CheckoutService service.ICheckoutService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	if err := app.Init(); err != nil {
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	app.setUpLogger()

	if err := app.setUpDbConn(); err != nil {
		return err
	}
	app.setUpRedis()
	app.setUpTokenMaker()
	app.setUpStripe()
	app.setUpEventProducer()
	app.setUpServices()

	return nil
}

func (app *ApplicationContext) setUpLogger() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "storefront").Logger()
	app.Logger = &logger
}

func (app *ApplicationContext) setUpDbConn() error {
	log.Printf("Start setup database connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbConn = conn
	app.DbDao = db.NewDbDao(conn)

	if err := app.DbDao.InitMigrate(); err != nil {
		return err
	}
	log.Printf("Finish setup database connection")
	return nil
}

// redis是可選依賴，沒設定就不掛快取
func (app *ApplicationContext) setUpRedis() {
	if app.Cf.RedisAddr == "" {
		return
	}
	app.RedisClient = redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := app.RedisClient.Ping(ctx).Err(); err != nil {
		app.Logger.Warn().Err(err).Msg("redis unreachable, product cache disabled")
		app.RedisClient = nil
	}
}

func (app *ApplicationContext) setUpTokenMaker() {
	app.TokenMaker = auth.NewJWTMaker(app.Cf.AuthTokenKey)
}

func (app *ApplicationContext) setUpStripe() {
	app.StripeClient = payment.NewStripeClient(app.Cf.StripeSecretKey, app.Cf.StripeWebhookSecret)
}

// kafka也是可選依賴，沒設定broker就不發訂單事件
func (app *ApplicationContext) setUpEventProducer() {
	if app.Cf.KafkaBrokers == "" {
		return
	}
	topic := app.Cf.KafkaOrderTopic
	if topic == "" {
		topic = "storefront.order.events"
	}
	app.EventProducer = producer.NewOrderEventProducer(strings.Split(app.Cf.KafkaBrokers, ","), topic)
}

func (app *ApplicationContext) setUpServices() {
	orderRepo := db.NewOrderRepo(app.DbDao)
	productRepo := db.NewProductRepo(app.DbDao)
	customerRepo := db.NewCustomerRepo(app.DbDao)

	var productCache redis_repo.IProductCacheRepository
	if app.RedisClient != nil {
		productCache = redis_repo.NewProductCacheRepo(app.RedisClient, 5*time.Minute)
	}

	siteURL := strings.TrimSuffix(app.Cf.SiteURL, "/")
	successURL := siteURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := siteURL + "/cart?canceled=true"

	app.ProductService = service.NewProductService(productRepo, productCache, app.Logger)
	app.CustomerService = service.NewCustomerService(customerRepo)
	app.OrderService = service.NewOrderService(orderRepo, app.EventProducer, app.Logger)
	app.CheckoutService = service.NewCheckoutService(customerRepo, orderRepo, app.StripeClient, app.Cf.Currency, successURL, cancelURL)
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	if app.EventProducer != nil {
		if err := app.EventProducer.Close(); err != nil {
			app.Logger.Error().Err(err).Msg("close event producer failed")
		}
	}
	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			app.Logger.Error().Err(err).Msg("close redis failed")
		}
	}
	if app.DbConn != nil {
		sqlDB, err := app.DbConn.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
