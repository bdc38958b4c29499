// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"health-dashboard-go/internal/assistant"
	"health-dashboard-go/internal/config"
	"health-dashboard-go/internal/pipeline"
	"health-dashboard-go/internal/repository"
	"health-dashboard-go/internal/service"
	"health-dashboard-go/pkg/database"
	"health-dashboard-go/pkg/kafka"
	"health-dashboard-go/pkg/log"
	"health-dashboard-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()
	log.Info("日志记录器初始化成功")

	// 3. 加载知识库，规则表不合法时直接退出
	kb, err := assistant.LoadKnowledgeBase(cfg.Assistant.KnowledgePath)
	if err != nil {
		log.Fatal("加载知识库失败", err)
	}
	classifier, err := assistant.NewClassifier(kb)
	if err != nil {
		log.Fatal("知识库校验失败", err)
	}

	// 4. 初始化数据库和 Redis
	db, err := database.NewMySQL(cfg.Database.MySQL.DSN)
	if err != nil {
		log.Fatal("MySQL 初始化失败", err)
	}
	defer func() {
		if err := database.CloseMySQL(db); err != nil {
			log.Error("关闭 MySQL 失败", err)
		}
	}()
	if err := repository.Migrate(db); err != nil {
		log.Fatal("数据库迁移失败", err)
	}
	rdb, err := database.NewRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	if err != nil {
		log.Fatal("Redis 初始化失败", err)
	}
	defer rdb.Close()

	// 5. 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(rdb)
	scheduleRepo := repository.NewScheduleRepository(db)
	diseaseRepo := repository.NewDiseaseRepository(db)
	chatRecordRepo := repository.NewChatRecordRepository(db)
	conversationRepo := repository.NewConversationRepository(rdb, cfg.Assistant.HistoryLimit)

	// 6. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	conversationService := service.NewConversationService(conversationRepo, chatRecordRepo)
	diseaseService := service.NewDiseaseService(diseaseRepo)
	if n, err := diseaseService.Seed(classifier.Diseases()); err != nil {
		log.Error("写入疾病目录失败", err)
	} else if n > 0 {
		log.Infof("已写入 %d 条疾病目录", n)
	}

	// 7. 聊天归档管道：未配置 Kafka 时不发布也不消费
	var publisher service.TurnPublisher
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	consumerDone := make(chan struct{})
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka)
		defer func() {
			if err := producer.Close(); err != nil {
				log.Error("关闭 Kafka 生产者失败", err)
			}
		}()
		publisher = producer
		go func() {
			defer close(consumerDone)
			kafka.StartConsumer(consumerCtx, cfg.Kafka, rdb, pipeline.NewArchiveProcessor(chatRecordRepo))
		}()
	} else {
		close(consumerDone)
		log.Info("未配置 Kafka，聊天归档已禁用")
	}

	svcs := services{
		user:         service.NewUserService(userRepo, tokenRepo, jwtManager),
		profile:      service.NewProfileService(userRepo),
		schedule:     service.NewScheduleService(scheduleRepo),
		conversation: conversationService,
		disease:      diseaseService,
		admin:        service.NewAdminService(userRepo, conversationRepo),
		chat: service.NewChatService(classifier, conversationService, publisher, service.ChatOptions{
			ThinkingDelay:  time.Duration(cfg.Assistant.ThinkingDelayMs) * time.Millisecond,
			MaxInputLength: cfg.Assistant.MaxInputLength,
		}),
	}

	// 8. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := newRouter(svcs, cfg.Server.Origins())

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP 服务器关闭失败", err)
	}

	// 停止消费者后再关闭 Redis 与 MySQL（由上面的 defer 执行）
	stopConsumer()
	select {
	case <-consumerDone:
	case <-ctx.Done():
		log.Warnf("等待 Kafka 消费者退出超时")
	}
	log.Info("服务已优雅关闭")
}
