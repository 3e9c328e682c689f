package handler

import (
	"context"
	"log/slog"

	"careerlink/internal/delivery/http/dto"
	"careerlink/internal/domain/job"
	"careerlink/internal/domain/student"
	"careerlink/internal/infrastructure/storage"
	"careerlink/internal/pkg/response"
	"careerlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type StudentHandler struct {
	profile usecase.StudentProfileUsecase
	jobs    usecase.StudentJobsUsecase
	files   FileStore
	logger  *slog.Logger
}

func NewStudentHandler(profile usecase.StudentProfileUsecase, jobs usecase.StudentJobsUsecase, files FileStore, logger *slog.Logger) *StudentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StudentHandler{profile: profile, jobs: jobs, files: files, logger: logger}
}

// RegisterRoutes mounts the student endpoints on r, which must already be
// restricted to authenticated students.
func (h *StudentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/profile", h.GetProfile)
	r.Put("/profile/personal-details", h.UpdatePersonalDetails)
	r.Post("/profile/image", h.UploadProfileImage)

	r.Post("/education", h.AddEducation)
	r.Put("/education/:id", h.UpdateEducation)
	r.Delete("/education/:id", h.DeleteEducation)

	r.Post("/skills", h.AddSkill)
	r.Put("/skills/:id", h.UpdateSkill)
	r.Delete("/skills/:id", h.DeleteSkill)

	r.Post("/experience", h.AddExperience)
	r.Put("/experience/:id", h.UpdateExperience)
	r.Delete("/experience/:id", h.DeleteExperience)

	r.Post("/resume/upload", h.UploadResume)
	r.Post("/resume/generate", h.GenerateResume)

	r.Get("/jobs/applied", h.AppliedJobs)
	r.Get("/jobs", h.BrowseJobs)
	r.Post("/jobs/:jobId/apply", h.Apply)
}

func (h *StudentHandler) GetProfile(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	p, err := h.profile.GetProfile(c.Context(), uid)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, response.MessageOK, dto.NewStudentProfileResponse(p))
}

func (h *StudentHandler) UpdatePersonalDetails(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.PersonalDetailsRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	p, err := h.profile.UpdatePersonalDetails(c.Context(), uid, req.Details())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "Personal details updated", dto.NewStudentProfileResponse(p))
}

func (h *StudentHandler) UploadProfileImage(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	path, err := receiveUpload(c, h.files, storage.ProfileImage)
	if err != nil {
		return err
	}
	saved, err := h.profile.SetProfileImage(c.Context(), uid, path)
	if err != nil {
		discardUpload(h.files, path, h.logger)
		return mapUsecaseError(err)
	}
	return response.OK(c, "Profile image uploaded", fiber.Map{"imageUrl": saved})
}

func (h *StudentHandler) AddEducation(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.EducationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	p, err := h.profile.AddEducation(c.Context(), uid, req.ToEducation())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, "Education added", dto.NewStudentProfileResponse(p))
}

func (h *StudentHandler) UpdateEducation(c fiber.Ctx) error {
	uid, id, err := h.ownerAndID(c, "Education not found")
	if err != nil {
		return err
	}
	var req dto.UpdateEducationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	p, err := h.profile.UpdateEducation(c.Context(), uid, id, req.Patch())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "Education updated", dto.NewStudentProfileResponse(p))
}

func (h *StudentHandler) DeleteEducation(c fiber.Ctx) error {
	return h.deleteEntry(c, "Education not found", "Education deleted", h.profile.DeleteEducation)
}

func (h *StudentHandler) AddSkill(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.SkillRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	p, err := h.profile.AddSkill(c.Context(), uid, req.ToSkill())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, "Skill added", dto.NewStudentProfileResponse(p))
}

func (h *StudentHandler) UpdateSkill(c fiber.Ctx) error {
	uid, id, err := h.ownerAndID(c, "Skill not found")
	if err != nil {
		return err
	}
	var req dto.UpdateSkillRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	p, err := h.profile.UpdateSkill(c.Context(), uid, id, req.Patch())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "Skill updated", dto.NewStudentProfileResponse(p))
}

func (h *StudentHandler) DeleteSkill(c fiber.Ctx) error {
	return h.deleteEntry(c, "Skill not found", "Skill deleted", h.profile.DeleteSkill)
}

func (h *StudentHandler) AddExperience(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.ExperienceRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	p, err := h.profile.AddExperience(c.Context(), uid, req.ToExperience())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, "Experience added", dto.NewStudentProfileResponse(p))
}

func (h *StudentHandler) UpdateExperience(c fiber.Ctx) error {
	uid, id, err := h.ownerAndID(c, "Experience not found")
	if err != nil {
		return err
	}
	var req dto.UpdateExperienceRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	p, err := h.profile.UpdateExperience(c.Context(), uid, id, req.Patch())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "Experience updated", dto.NewStudentProfileResponse(p))
}

func (h *StudentHandler) DeleteExperience(c fiber.Ctx) error {
	return h.deleteEntry(c, "Experience not found", "Experience deleted", h.profile.DeleteExperience)
}

func (h *StudentHandler) UploadResume(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	path, err := receiveUpload(c, h.files, storage.Resume)
	if err != nil {
		return err
	}
	saved, err := h.profile.SetUploadedResume(c.Context(), uid, path)
	if err != nil {
		discardUpload(h.files, path, h.logger)
		return mapUsecaseError(err)
	}
	return response.OK(c, "Resume uploaded", fiber.Map{"resumeUrl": saved})
}

func (h *StudentHandler) GenerateResume(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	text, err := h.profile.GenerateResume(c.Context(), uid)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "Resume generated", fiber.Map{"resume": text})
}

func (h *StudentHandler) BrowseJobs(c fiber.Ctx) error {
	items, err := h.jobs.Browse(c.Context(), job.Filter{JobType: job.Type(c.Query("jobType"))})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, response.MessageOK, dto.NewJobListResponse(items))
}

func (h *StudentHandler) Apply(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "jobId", "Job not found")
	if err != nil {
		return err
	}
	app, err := h.jobs.Apply(c.Context(), uid, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "Application submitted", dto.NewApplicationResponse(app))
}

func (h *StudentHandler) AppliedJobs(c fiber.Ctx) error {
	uid, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.jobs.Applied(c.Context(), uid)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, response.MessageOK, dto.NewAppliedListResponse(items))
}

func (h *StudentHandler) ownerAndID(c fiber.Ctx, notFound string) (uuid.UUID, uuid.UUID, error) {
	uid, err := currentUserID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err := pathID(c, "id", notFound)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return uid, id, nil
}

type deleteEntryFunc func(ctx context.Context, userID, id uuid.UUID) (student.Profile, error)

func (h *StudentHandler) deleteEntry(c fiber.Ctx, notFound, done string, del deleteEntryFunc) error {
	uid, id, err := h.ownerAndID(c, notFound)
	if err != nil {
		return err
	}
	p, err := del(c.Context(), uid, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, done, dto.NewStudentProfileResponse(p))
}
