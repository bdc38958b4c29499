// Package kafka 提供了与 Kafka 消息队列交互的功能。
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"health-dashboard-go/internal/config"
	"health-dashboard-go/pkg/log"
	"health-dashboard-go/pkg/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
)

// maxAttempts 是一条消息处理失败后重试的上限，达到后提交 offset 放弃该消息。
const maxAttempts = 3

// TaskProcessor 处理一条聊天归档任务，使消费者与具体的管道实现解耦。
type TaskProcessor interface {
	Process(ctx context.Context, task tasks.ChatTurnTask) error
}

// Producer 将聊天轮次写入 Kafka。
type Producer struct {
	writer *kafka.Writer
}

// NewProducer 初始化 Kafka 生产者。
func NewProducer(cfg config.KafkaConfig) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokerList(cfg.Brokers)...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	log.Info("Kafka 生产者初始化成功")
	return &Producer{writer: w}
}

// PublishTurn 发送一条聊天轮次。以对话 ID 作为 key，保证同一对话内有序。
func (p *Producer) PublishTurn(ctx context.Context, task tasks.ChatTurnTask) error {
	taskBytes, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(task.ConversationID),
		Value: taskBytes,
	})
}

// Close 刷新并关闭生产者。
func (p *Producer) Close() error {
	return p.writer.Close()
}

// retryBackoff 是两次重试之间的基础等待时间，按已失败次数线性增长。
const retryBackoff = 500 * time.Millisecond

// attemptCounter 记录一条消息的失败次数。计数保存在 Redis 中，
// 进程重启后重新拉取同一条消息时仍然有效。
type attemptCounter interface {
	Incr(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string)
}

type redisCounter struct {
	rdb *redis.Client
}

func (c redisCounter) Incr(ctx context.Context, key string) (int64, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	_ = c.rdb.Expire(ctx, key, 24*time.Hour).Err()
	return n, nil
}

func (c redisCounter) Reset(ctx context.Context, key string) {
	_ = c.rdb.Del(ctx, key).Err()
}

// StartConsumer 启动消费者，阻塞直到 ctx 被取消。
// 处理失败的消息会在原地重试，累计 maxAttempts 次后放弃并提交 offset。
func StartConsumer(ctx context.Context, cfg config.KafkaConfig, rdb *redis.Client, processor TaskProcessor) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokerList(cfg.Brokers),
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})
	defer func() {
		if err := r.Close(); err != nil {
			log.Errorf("关闭 Kafka 消费者失败: %v", err)
		}
	}()

	log.Infof("Kafka 消费者已启动，正在监听主题 '%s'", cfg.Topic)
	counter := redisCounter{rdb: rdb}

	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("Kafka 消费者已停止")
				return
			}
			log.Error("从 Kafka 读取消息失败", err)
			if !sleep(ctx, retryBackoff) {
				log.Info("Kafka 消费者已停止")
				return
			}
			continue
		}

		var task tasks.ChatTurnTask
		if err := json.Unmarshal(m.Value, &task); err != nil {
			log.Errorf("无法解析 Kafka 消息: %v, offset: %d", err, m.Offset)
			// 消息格式错误，直接提交，避免阻塞队列
			commit(ctx, r, m)
			continue
		}

		key := fmt.Sprintf("kafka:attempts:%s:%d:%d", m.Topic, m.Partition, m.Offset)
		if processWithRetry(ctx, processor, counter, key, task, retryBackoff) {
			commit(ctx, r, m)
		}
	}
}

// processWithRetry 处理一条任务直到成功或累计失败 maxAttempts 次。
// 返回 true 表示应提交 offset；ctx 被取消时返回 false，消息在重启后重新投递。
func processWithRetry(ctx context.Context, processor TaskProcessor, counter attemptCounter, key string, task tasks.ChatTurnTask, backoff time.Duration) bool {
	var local int64
	for {
		err := processor.Process(ctx, task)
		if err == nil {
			counter.Reset(ctx, key)
			return true
		}
		if ctx.Err() != nil {
			return false
		}

		local++
		attempts, incErr := counter.Incr(ctx, key)
		if incErr != nil || attempts < local {
			// Redis 不可用时退回到本地计数
			attempts = local
		}
		log.Errorw("处理聊天归档任务失败", "userId", task.UserID, "attempt", attempts, "error", err)

		if attempts >= maxAttempts {
			log.Errorf("聊天归档任务多次失败(>=%d)，提交 offset 终止重试: key=%s", maxAttempts, key)
			counter.Reset(ctx, key)
			return true
		}
		if !sleep(ctx, backoff*time.Duration(attempts)) {
			return false
		}
	}
}

// sleep 等待 d，ctx 先结束时返回 false。
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func commit(ctx context.Context, r *kafka.Reader, m kafka.Message) {
	if err := r.CommitMessages(ctx, m); err != nil {
		log.Errorf("提交 Kafka 消息 offset 失败: %v", err)
	}
}

func brokerList(brokers string) []string {
	var out []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
