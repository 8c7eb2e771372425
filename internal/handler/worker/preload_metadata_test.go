package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"

	"github.com/fhuszti/medias-metadata-go/internal/mock"
	"github.com/fhuszti/medias-metadata-go/internal/model"
	"github.com/fhuszti/medias-metadata-go/internal/task"
)

func TestPreloadMetadataHandler_InvalidPayload(t *testing.T) {
	svc := &mock.MockRefresher{}
	err := PreloadMetadataHandler(svc)(context.Background(), asynq.NewTask(task.TypePreloadMetadata, []byte(`{"media_id":""}`)))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("got error %v; want SkipRetry", err)
	}
	if svc.PreloadCalled {
		t.Error("service should not be called on invalid payload")
	}
}

func TestPreloadMetadataHandler_ServiceErrorIsDropped(t *testing.T) {
	svc := &mock.MockRefresher{PreloadErr: errors.New("api down")}
	tk, _ := task.NewPreloadMetadataTask(model.PreloadItem{MediaID: "m1", RequestedAt: 100})

	if err := PreloadMetadataHandler(svc)(context.Background(), tk); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.PreloadCalled {
		t.Error("service not called")
	}
}

func TestPreloadMetadataHandler_Success(t *testing.T) {
	svc := &mock.MockRefresher{}
	in := model.PreloadItem{MediaID: "m1", RequestedAt: 100}
	tk, _ := task.NewPreloadMetadataTask(in)

	if err := PreloadMetadataHandler(svc)(context.Background(), tk); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Item != in {
		t.Errorf("service got %+v; want %+v", svc.Item, in)
	}
}
