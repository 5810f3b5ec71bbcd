package adapter

import (
	"fmt"
	"time"

	"github.com/docurag/DocuRAG/internal/api"
	"github.com/docurag/DocuRAG/internal/domain/jobModel"
)

// Converts internal job state into the API contract types. Internal error
// codes and step names never leak past this package.

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {
	return api.JobResponse{
		Id:        job.Id,
		ChatId:    job.ChatId,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     toOutgoingError(job.Error),
		Result: api.Result{
			Status:              string(job.Status),
			RAGExternalResponse: toRAGResponse(job.JobPayload),
		},
	}
}

func toOutgoingError(jobErr jobModel.JobError) *api.JobOutgoingError {
	if jobErr.Message == "" && jobErr.Code == 0 {
		return nil
	}
	return &api.JobOutgoingError{
		Code:    jobErr.Code,
		Message: jobErr.Message,
		Retry:   jobErr.Retry,
	}
}

// toRAGResponse is nil until the pipeline produced something worth showing.
func toRAGResponse(payload jobModel.JobPayload) *api.RAGResponse {
	if payload.Answer == "" && len(payload.Sources) == 0 {
		return nil
	}
	return &api.RAGResponse{
		Question: payload.Question,
		Answer:   payload.Answer,
		Sources:  payload.Sources,
	}
}

func BadRequest(id string, message string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: message,
			Retry:   false,
		},
	}
}
