// FILE: internal/service/export_service.go
package service

import (
	"context"

	"reflect360-be/internal/repository/specification"
	"reflect360-be/internal/repository/unitofwork"
	"reflect360-be/pkg/export"

	"github.com/google/uuid"
)

type IExportService interface {
	// ExportReport builds the DOCX feedback report for the user. The analysis
	// section is included only when an analysis is available.
	ExportReport(ctx context.Context, userId uuid.UUID) (*export.Result, error)
}

type exportService struct {
	uowFactory      unitofwork.RepositoryFactory
	analysisService IAnalysisService
	offline         bool
}

func NewExportService(uowFactory unitofwork.RepositoryFactory, analysisService IAnalysisService, offline bool) IExportService {
	return &exportService{
		uowFactory:      uowFactory,
		analysisService: analysisService,
		offline:         offline,
	}
}

func (s *exportService) ExportReport(ctx context.Context, userId uuid.UUID) (*export.Result, error) {
	if s.offline {
		return nil, ErrCloudDisabled
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	responses, err := uow.FeedbackRepository().FindAll(ctx,
		specification.BySurveyID{SurveyID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	// Best effort: a report without the AI section is still a report.
	var analysis *export.Analysis
	if result := s.analysisService.Analysis(ctx, userId); result != nil {
		analysis = &export.Analysis{
			Summary:  result.Summary,
			Themes:   result.Themes,
			PerGroup: result.PerGroup,
			Advice:   result.Advice,
		}
	}

	exportResponses := make([]export.Response, 0, len(responses))
	for _, r := range responses {
		exportResponses = append(exportResponses, export.Response{
			Relationship: string(r.Relationship),
			QChange:      r.QChange,
			QActions:     r.QActions,
			SubmittedAt:  r.CreatedAt,
		})
	}

	return export.Compose(user.FullName, analysis, exportResponses)
}
