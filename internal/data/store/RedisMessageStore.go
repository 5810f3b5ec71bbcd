package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/docurag/DocuRAG/internal/adapter/utils"
	"github.com/docurag/DocuRAG/internal/config"
	"github.com/docurag/DocuRAG/internal/data/redisStore"
	"github.com/docurag/DocuRAG/internal/domain/jobModel"
	"github.com/docurag/DocuRAG/pkg/logger_i"
)

// Each chat id maps to a Redis list of JSON-encoded conversation turns.
type RedisMessageStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisMessageStore(ctx context.Context) *RedisMessageStore {
	backing := redisStore.GetRedisStore(ctx, config.RedisMessageStore)
	if backing == nil {
		return nil
	}
	return &RedisMessageStore{
		store:  backing,
		logger: logger_i.NewLogger("MessageStore"),
	}
}

func (s *RedisMessageStore) ValidateChatId(ctx context.Context, chatId string) bool {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chatId", chatId)
	isFound, err := s.store.Exists(ctx, chatId)
	if err != nil && !s.store.IsNil(err) {
		log.Error("Failed to check chat id", "err", err)
		return false
	}
	return isFound
}

// TrySaveChat appends a turn to an existing chat. Unknown ids are rejected
// so an expired chat cannot silently restart mid-conversation.
func (s *RedisMessageStore) TrySaveChat(ctx context.Context, id string, conversation jobModel.JobPayload) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chatId", id)
	if !s.ValidateChatId(ctx, id) {
		err := errors.New("invalid chat id")
		log.Error("Refusing to append to unknown chat", "err", err)
		return err
	}
	return s.appendTurn(ctx, id, conversation)
}

func (s *RedisMessageStore) appendTurn(ctx context.Context, id string, conversation jobModel.JobPayload) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chatId", id)
	data, err := json.Marshal(conversation)
	if err != nil {
		log.Error("Failed to encode conversation turn", "err", err)
		return err
	}
	if err := s.store.ListPush(ctx, id, data); err != nil {
		log.Error("Failed to save chat turn", "err", err)
		return err
	}
	return nil
}

func (s *RedisMessageStore) InitNewChat(ctx context.Context, id string) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chatId", id)
	log.Debug("Initializing new chat")
	if err := s.store.Del(ctx, id); err != nil && !s.store.IsNil(err) {
		log.Error("Failed to reset chat", "err", err)
	}
	return s.appendTurn(ctx, id, jobModel.JobPayload{})
}

// GetMessageHistory returns the most recent turns, newest first.
func (s *RedisMessageStore) GetMessageHistory(ctx context.Context, chatId string) (error, []string) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chatId", chatId)

	res, err := s.store.ListGetRecent(ctx, chatId, config.ChatHistoryWindow)
	if err != nil {
		log.Error("Failed to read message history", "err", err)
		return err, nil
	}
	return nil, utils.ReverseStringArray(res)
}

func TestMessageStore(store *redisStore.Store) *RedisMessageStore {
	return &RedisMessageStore{
		store:  store,
		logger: logger_i.NewLogger("test message store"),
	}
}
