package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/docurag/DocuRAG/internal/config"
	"github.com/docurag/DocuRAG/internal/domain/jobModel"
)

type InMemoryMessageStore struct {
	chatLock *sync.RWMutex
	chatMap  map[string][]jobModel.JobPayload
}

func InitMessageStore() *InMemoryMessageStore {
	return &InMemoryMessageStore{
		chatLock: new(sync.RWMutex),
		chatMap:  make(map[string][]jobModel.JobPayload),
	}
}

func (store *InMemoryMessageStore) ValidateChatId(ctx context.Context, chatId string) bool {
	store.chatLock.RLock()
	defer store.chatLock.RUnlock()
	_, ok := store.chatMap[chatId]
	return ok
}

func (store *InMemoryMessageStore) TrySaveChat(ctx context.Context, id string, conversation jobModel.JobPayload) error {
	if !store.ValidateChatId(ctx, id) {
		return nil
	}
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	store.chatMap[id] = append(store.chatMap[id], conversation)
	return nil
}

func (store *InMemoryMessageStore) InitNewChat(ctx context.Context, id string) error {
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	store.chatMap[id] = make([]jobModel.JobPayload, 0)
	return nil
}

// GetMessageHistory mirrors the Redis store: JSON-encoded turns, newest first.
func (store *InMemoryMessageStore) GetMessageHistory(ctx context.Context, chatId string) (error, []string) {
	store.chatLock.RLock()
	defer store.chatLock.RUnlock()

	turns := store.chatMap[chatId]
	start := 0
	if int64(len(turns)) > config.ChatHistoryWindow {
		start = len(turns) - int(config.ChatHistoryWindow)
	}

	history := make([]string, 0, len(turns)-start)
	for i := len(turns) - 1; i >= start; i-- {
		data, err := json.Marshal(turns[i])
		if err != nil {
			return err, nil
		}
		history = append(history, string(data))
	}
	return nil, history
}
