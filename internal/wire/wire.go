package wire

import (
	"Inkwell/internal/api"
	"Inkwell/internal/api/config"
	"Inkwell/internal/api/handler"
	"Inkwell/internal/job"
	"Inkwell/internal/pkg/cron"
	"Inkwell/internal/pkg/es"
	"Inkwell/internal/pkg/kafka"
	mgo "Inkwell/internal/pkg/mongo"
	"Inkwell/internal/repository"
	"Inkwell/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
	Producer     sarama.SyncProducer
}

// BuildApplication 未配置 Kafka broker 时不投递也不消费领域事件
func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := repository.NewUserRepo(mongoDB, cfg.Mongo.Transactional)
	postRepo := repository.NewPostRepo(mongoDB)
	commentRepo := repository.NewCommentRepo(mongoDB)
	sysBoxRepo := mgo.NewSysBoxRepo(mongoDB)
	userMetricsRepo := repository.NewUserMetricsRepository(db)
	postMetricRepo := repository.NewPostMetricRepository(db)

	for _, idx := range []interface {
		EnsureIndexes(ctx context.Context) error
	}{userRepo, postRepo, commentRepo, sysBoxRepo} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
	}

	var esPostRepo es.PostRepo
	var esUserRepo es.UserRepo
	if es.Client != nil {
		esPostRepo = es.NewPostRepo(es.Client)
		esUserRepo = es.NewUserRepo(es.Client)
	}

	publisher := service.NewNopPublisher()
	var producer sarama.SyncProducer
	if len(cfg.Kafka.Brokers) > 0 {
		p, err := kafka.NewSyncProducer(cfg)
		if err != nil {
			return nil, err
		}
		producer = p
		publisher = kafka.NewEventProducer(producer, cfg.KafkaEvent.Topic)
	} else {
		log.Warn("Kafka brokers not configured, domain events are dropped")
	}

	userService := service.NewUserService(userRepo, publisher)
	userFollowService := service.NewUserFollowService(userRepo, publisher,
		cfg.Suggestion.PageSize, time.Duration(cfg.Suggestion.CacheTTL)*time.Second)
	postService := service.NewPostService(postRepo, commentRepo, userRepo, postMetricRepo, publisher)
	postActionService := service.NewPostActionService(postRepo, userRepo, publisher)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo, publisher)
	adminService := service.NewAdminService(userRepo)
	searchService := service.NewSearchService(esPostRepo, esUserRepo, postRepo, userRepo)
	sysBoxService := service.NewSysBoxService(sysBoxRepo, userRepo)
	userMetricsService := service.NewUserMetricsService(userMetricsRepo, userRepo)
	postMetricService := service.NewPostMetricService(postMetricRepo, postRepo, commentRepo)

	admin := cfg.Server.Admin
	if admin.Email != "" {
		if err := userService.EnsureAdmin(ctx, admin.Name, admin.Email, admin.Password); err != nil {
			return nil, err
		}
	}

	handlers := &api.HandlersGroup{
		UserHandler:       handler.NewUserHandler(userService, postService),
		UserFollowHandler: handler.NewUserFollowHandler(userFollowService),
		PostHandler:       handler.NewPostHandler(postService),
		PostActionHandler: handler.NewPostActionHandler(postActionService, commentService),
		AdminHandler:      handler.NewAdminHandler(adminService),
		SearchHandler:     handler.NewSearchHandler(searchService),
		SysBoxHandler:     handler.NewSysBoxHandler(sysBoxService),
		UserMetricHandler: handler.NewUserMetricsHandler(userMetricsService),
		PostMetricHandler: handler.NewPostMetricHandler(postMetricService),
	}

	router := api.SetupRouter(handlers)

	var kafkaMgr *kafka.ConsumerManager
	if producer != nil {
		mgr, err := kafka.NewConsumerManager(cfg, sysBoxService, searchService)
		if err != nil {
			_ = producer.Close()
			return nil, err
		}
		kafkaMgr = mgr
	}

	cronMgr := cron.NewCronManager(
		job.NewUserMetricsJob(userMetricsService),
		job.NewPostMetricsJob(postMetricService),
	)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
		Producer:     producer,
	}, nil
}
