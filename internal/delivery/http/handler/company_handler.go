package handler

import (
	"log/slog"

	"careerlink/internal/delivery/http/dto"
	"careerlink/internal/domain/application"
	"careerlink/internal/infrastructure/storage"
	"careerlink/internal/pkg/response"
	"careerlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CompanyHandler struct {
	company usecase.CompanyUsecase
	review  usecase.ApplicationReviewUsecase
	files   FileStore
	logger  *slog.Logger
}

func NewCompanyHandler(company usecase.CompanyUsecase, review usecase.ApplicationReviewUsecase, files FileStore, logger *slog.Logger) *CompanyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompanyHandler{company: company, review: review, files: files, logger: logger}
}

// RegisterRoutes mounts the company endpoints on r, which must already be
// restricted to approved companies.
func (h *CompanyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/profile", h.GetProfile)
	r.Put("/profile", h.UpdateProfile)
	r.Post("/profile/logo", h.UploadLogo)

	r.Post("/jobs", h.CreateJob)
	r.Get("/jobs", h.ListJobs)
	r.Put("/jobs/:jobId", h.UpdateJob)
	r.Delete("/jobs/:jobId", h.DeleteJob)
	r.Get("/jobs/:jobId/applications", h.JobApplications)

	r.Get("/applications", h.Applications)
	r.Get("/applications/students/:studentId/resume", h.StudentResume)
	r.Put("/applications/:id/approve", h.decide(application.StatusApproved, "Application approved"))
	r.Put("/applications/:id/reject", h.decide(application.StatusRejected, "Application rejected"))
}

func (h *CompanyHandler) GetProfile(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	p, err := h.company.GetProfile(c.Context(), uid)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, response.MessageOK, dto.NewCompanyProfileResponse(p))
}

func (h *CompanyHandler) UpdateProfile(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.CompanyProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	p, err := h.company.UpdateProfile(c.Context(), uid, req.Patch())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "Profile updated", dto.NewCompanyProfileResponse(p))
}

func (h *CompanyHandler) UploadLogo(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	path, err := receiveUpload(c, h.files, storage.Logo)
	if err != nil {
		return err
	}
	saved, err := h.company.SetLogo(c.Context(), uid, path)
	if err != nil {
		discardUpload(h.files, path, h.logger)
		return mapUsecaseError(err)
	}
	return response.OK(c, "Logo uploaded", fiber.Map{"logoUrl": saved})
}

func (h *CompanyHandler) CreateJob(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.JobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	j, err := h.company.CreateJob(c.Context(), uid, req.ToJob())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, "Job created", dto.NewJobResponse(j))
}

func (h *CompanyHandler) ListJobs(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.company.ListJobs(c.Context(), uid)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, response.MessageOK, dto.NewJobResponses(items))
}

func (h *CompanyHandler) UpdateJob(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "jobId", "Job not found")
	if err != nil {
		return err
	}
	var req dto.UpdateJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	j, err := h.company.UpdateJob(c.Context(), uid, jobID, req.Patch())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "Job updated", dto.NewJobResponse(j))
}

func (h *CompanyHandler) DeleteJob(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "jobId", "Job not found")
	if err != nil {
		return err
	}
	if err := h.company.DeleteJob(c.Context(), uid, jobID); err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "Job deleted", nil)
}

func (h *CompanyHandler) JobApplications(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "jobId", "Job not found")
	if err != nil {
		return err
	}
	items, err := h.review.ListForJob(c.Context(), uid, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, response.MessageOK, dto.NewReceivedApplicationResponses(items))
}

func (h *CompanyHandler) Applications(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.review.ListForCompany(c.Context(), uid)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, response.MessageOK, dto.NewReceivedApplicationResponses(items))
}

func (h *CompanyHandler) StudentResume(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	studentID, err := pathID(c, "studentId", "Student profile not found")
	if err != nil {
		return err
	}
	res, err := h.company.StudentResume(c.Context(), uid, studentID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, response.MessageOK, dto.StudentResumeResponse{
		StudentProfileResponse: dto.NewStudentProfileResponse(res.Profile),
		Email:                  res.Email,
	})
}

func (h *CompanyHandler) decide(status application.Status, done string) fiber.Handler {
	return func(c fiber.Ctx) error {
		uid, err := currentUserID(c)
		if err != nil {
			return err
		}
		appID, err := pathID(c, "id", "Application not found")
		if err != nil {
			return err
		}
		app, err := h.review.Decide(c.Context(), uid, appID, status)
		if err != nil {
			return mapUsecaseError(err)
		}
		return response.OK(c, done, dto.NewApplicationResponse(app))
	}
}
