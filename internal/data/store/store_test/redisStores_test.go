package store_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/docurag/DocuRAG/internal/config"
	"github.com/docurag/DocuRAG/internal/data/redisStore"
	"github.com/docurag/DocuRAG/internal/data/store"
	"github.com/docurag/DocuRAG/internal/domain/jobModel"
	"github.com/redis/go-redis/v9"
)

func newJobStore(t *testing.T) (*store.RedisJobStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.TestJobStore(redisStore.NewTestStore(client)), mr
}

func newMessageStore(t *testing.T) (*store.RedisMessageStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.TestMessageStore(redisStore.NewTestStore(client)), mr
}

func TestRedisJobStore_Lifecycle(t *testing.T) {
	jobStore, mr := newJobStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	jobID := "job_abc_123"

	testJob := jobModel.Job{
		Id:     jobID,
		Status: jobModel.JobStatusRunning,
		JobPayload: jobModel.JobPayload{
			Question: "How do I mock Redis?",
		},
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		if err := jobStore.SaveJob(ctx, testJob); err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}

		retrievedJob, found := jobStore.GetJob(ctx, jobID)
		if !found {
			t.Fatal("Job was saved but not found in Redis")
		}
		if retrievedJob.JobPayload.Question != testJob.JobPayload.Question {
			t.Errorf("Data mismatch! Got %s, want %s",
				retrievedJob.JobPayload.Question, testJob.JobPayload.Question)
		}
		if retrievedJob.Status != jobModel.JobStatusRunning {
			t.Errorf("Status mismatch! Got %s", retrievedJob.Status)
		}
	})

	t.Run("Get Non-Existent Job", func(t *testing.T) {
		if _, found := jobStore.GetJob(ctx, "ghost-id"); found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Delete Job", func(t *testing.T) {
		jobStore.DeleteJob(ctx, jobID)

		if mr.Exists(jobID) {
			t.Error("Job still exists in Redis after DeleteJob call")
		}
	})
}

func TestRedisJobStore_Race(t *testing.T) {
	jobStore, _ := newJobStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "race-trace")
	job := jobModel.Job{Id: "race-job"}

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = jobStore.SaveJob(ctx, job)
			_, _ = jobStore.GetJob(ctx, "race-job")
		}()
	}
	wg.Wait()
}

func TestRedisMessageStore_ChatLifecycle(t *testing.T) {
	msgStore, _ := newMessageStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "chat-trace")
	chatID := "chat_abc_123"

	t.Run("Unknown chat rejects appends", func(t *testing.T) {
		err := msgStore.TrySaveChat(ctx, chatID, jobModel.JobPayload{Question: "hello?"})
		if err == nil {
			t.Error("expected error appending to unknown chat id")
		}
	})

	t.Run("Init then append succeeds", func(t *testing.T) {
		if err := msgStore.InitNewChat(ctx, chatID); err != nil {
			t.Fatalf("InitNewChat failed: %v", err)
		}
		err := msgStore.TrySaveChat(ctx, chatID, jobModel.JobPayload{
			Question: "what is in my contract?",
			Answer:   "the contract covers two years",
		})
		if err != nil {
			t.Fatalf("TrySaveChat failed: %v", err)
		}
		if !msgStore.ValidateChatId(ctx, chatID) {
			t.Error("chat id should validate after init")
		}
	})

	t.Run("History is newest first and JSON encoded", func(t *testing.T) {
		err, history := msgStore.GetMessageHistory(ctx, chatID)
		if err != nil {
			t.Fatalf("GetMessageHistory failed: %v", err)
		}
		if len(history) == 0 {
			t.Fatal("expected history entries")
		}
		var turn jobModel.JobPayload
		if err := json.Unmarshal([]byte(history[0]), &turn); err != nil {
			t.Fatalf("newest entry is not valid JSON: %v", err)
		}
		if turn.Question != "what is in my contract?" {
			t.Errorf("expected newest turn first, got question %q", turn.Question)
		}
	})
}

func TestRedisMessageStore_HistoryWindow(t *testing.T) {
	msgStore, _ := newMessageStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "window-trace")
	chatID := "chat_window"

	if err := msgStore.InitNewChat(ctx, chatID); err != nil {
		t.Fatalf("InitNewChat failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		payload := jobModel.JobPayload{Question: fmt.Sprintf("question %d", i)}
		if err := msgStore.TrySaveChat(ctx, chatID, payload); err != nil {
			t.Fatalf("TrySaveChat failed on turn %d: %v", i, err)
		}
	}

	err, history := msgStore.GetMessageHistory(ctx, chatID)
	if err != nil {
		t.Fatalf("GetMessageHistory failed: %v", err)
	}
	if int64(len(history)) != config.ChatHistoryWindow {
		t.Fatalf("expected %d turns, got %d", config.ChatHistoryWindow, len(history))
	}

	var newest jobModel.JobPayload
	if err := json.Unmarshal([]byte(history[0]), &newest); err != nil {
		t.Fatalf("bad JSON in history: %v", err)
	}
	if newest.Question != "question 9" {
		t.Errorf("expected the latest turn first, got %q", newest.Question)
	}
}
