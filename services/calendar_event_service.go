package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"faithhub.app/configs"
	"faithhub.app/configs/configslog"
	"faithhub.app/models"
	"faithhub.app/pkg/icalendar"
	"faithhub.app/pkg/imagestore"
	"faithhub.app/pkg/queryparams"
	"faithhub.app/pkg/recurrence"
	"faithhub.app/policies"
	"faithhub.app/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CalendarEventServiceError is the typed error vocabulary of the event service.
type CalendarEventServiceError string

func (e CalendarEventServiceError) Error() string { return string(e) }

const (
	ErrEventNotFound       CalendarEventServiceError = "event not found"
	ErrEventForbidden      CalendarEventServiceError = "you are not allowed to perform this action"
	ErrEventInvalidInput   CalendarEventServiceError = "invalid event data"
	ErrEventCreationFailed CalendarEventServiceError = "event could not be created"
	ErrEventUpdateFailed   CalendarEventServiceError = "event could not be updated"
	ErrEventDeletionFailed CalendarEventServiceError = "event could not be deleted"
	ErrImageNotFound       CalendarEventServiceError = "event image not found"
	ErrImageLimitReached   CalendarEventServiceError = "image limit for this event reached"
	ErrImageInvalid        CalendarEventServiceError = "invalid image upload"
)

// EventInput carries the writable fields of a calendar event.
type EventInput struct {
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Type            models.EventType       `json:"type"`
	Color           string                 `json:"color"`
	StartTime       time.Time              `json:"start_time"`
	EndTime         time.Time              `json:"end_time"`
	IsAllDay        bool                   `json:"is_all_day"`
	Location        string                 `json:"location"`
	MeetingLink     string                 `json:"meeting_link"`
	MeetingPlatform string                 `json:"meeting_platform"`
	Timezone        string                 `json:"timezone"`
	Recurrence      models.RecurrenceKind  `json:"recurrence"`
	RecurrenceRules *models.RecurrenceRule `json:"recurrence_rules"`
	RecurrenceEnd   *time.Time             `json:"recurrence_end"`
	Visibility      models.EventVisibility `json:"visibility"`
	Status          models.EventStatus     `json:"status"`
	Attendees       []string               `json:"attendees"`
	Reminders       []int                  `json:"reminders"`
	CustomFields    map[string]any         `json:"custom_fields"`
}

// Occurrence is one concrete expansion of an event inside a query window.
type Occurrence struct {
	Event     *models.CalendarEvent `json:"event"`
	StartTime time.Time             `json:"start_time"`
	EndTime   time.Time             `json:"end_time"`
}

// InviteFailure explains why one attendee of a bulk invite was skipped.
type InviteFailure struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// ICalendarEventService is the application surface for calendar events.
type ICalendarEventService interface {
	CreateEvent(ctx context.Context, userID uint, input EventInput) (*models.CalendarEvent, error)
	GetEvent(ctx context.Context, id, userID uint) (*models.CalendarEvent, error)
	ListEvents(ctx context.Context, userID uint, start, end time.Time, params queryparams.ListParams) ([]models.CalendarEvent, error)
	ListOccurrences(ctx context.Context, userID uint, start, end time.Time, params queryparams.ListParams) ([]Occurrence, error)
	ListUpcoming(ctx context.Context, userID uint, limit int) ([]models.CalendarEvent, error)
	UpdateEvent(ctx context.Context, id, userID uint, input EventInput, scope models.MutationScope) (*models.CalendarEvent, error)
	DeleteEvent(ctx context.Context, id, userID uint, scope models.MutationScope) error
	ExportICal(ctx context.Context, id, userID uint) ([]byte, error)
	UploadImage(ctx context.Context, eventID, userID uint, originalName, mimeType string, data []byte, isPrimary bool) (*models.CalendarEventImage, error)
	ListImages(ctx context.Context, eventID, userID uint) ([]models.CalendarEventImage, error)
	SetPrimaryImage(ctx context.Context, eventID, imageID, userID uint) error
	DeleteImage(ctx context.Context, eventID, imageID, userID uint) error
}

// CalendarEventService implements ICalendarEventService.
type CalendarEventService struct {
	repo      repositories.ICalendarEventRepository
	subRepo   repositories.ICalendarSubscriptionRepository
	imageRepo repositories.ICalendarEventImageRepository
	userRepo  repositories.IUserRepository
	notifier  INotificationService
	store     imagestore.Store
	db        *gorm.DB
	now       func() time.Time
}

func NewCalendarEventService(notifier INotificationService, store imagestore.Store) ICalendarEventService {
	return &CalendarEventService{
		repo:      repositories.NewCalendarEventRepository(),
		subRepo:   repositories.NewCalendarSubscriptionRepository(),
		imageRepo: repositories.NewCalendarEventImageRepository(),
		userRepo:  repositories.NewUserRepository(),
		notifier:  notifier,
		store:     store,
		db:        configs.GetDB(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ValidateEventInput checks the writable fields against the calendar
// vocabulary and the recurrence rule shape.
func ValidateEventInput(input EventInput) error {
	if input.Title == "" {
		return fmt.Errorf("%w: title is required", ErrEventInvalidInput)
	}
	if input.StartTime.IsZero() || input.EndTime.IsZero() {
		return fmt.Errorf("%w: start and end times are required", ErrEventInvalidInput)
	}
	if !input.EndTime.After(input.StartTime) {
		return fmt.Errorf("%w: end time must be after start time", ErrEventInvalidInput)
	}
	if input.Type != "" && !models.ValidEventType(input.Type) {
		return fmt.Errorf("%w: unknown event type %q", ErrEventInvalidInput, input.Type)
	}
	if input.Visibility != "" && !models.ValidVisibility(input.Visibility) {
		return fmt.Errorf("%w: unknown visibility %q", ErrEventInvalidInput, input.Visibility)
	}
	if input.Status != "" && !models.ValidStatus(input.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrEventInvalidInput, input.Status)
	}
	if input.Recurrence != "" && !models.ValidRecurrenceKind(input.Recurrence) {
		return fmt.Errorf("%w: unknown recurrence %q", ErrEventInvalidInput, input.Recurrence)
	}
	if input.MeetingPlatform != "" {
		if _, ok := configs.Calendar().MeetingPlatforms[input.MeetingPlatform]; !ok {
			return fmt.Errorf("%w: unknown meeting platform %q", ErrEventInvalidInput, input.MeetingPlatform)
		}
	}
	if input.RecurrenceRules != nil {
		if input.Recurrence == "" || input.Recurrence == models.RecurrenceNone {
			return fmt.Errorf("%w: recurrence rules require a recurrence frequency", ErrEventInvalidInput)
		}
		if input.RecurrenceRules.Frequency != input.Recurrence {
			return fmt.Errorf("%w: recurrence rule frequency must match the event recurrence", ErrEventInvalidInput)
		}
		if err := input.RecurrenceRules.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrEventInvalidInput, err)
		}
	}
	if input.RecurrenceEnd != nil && !input.RecurrenceEnd.After(input.StartTime) {
		return fmt.Errorf("%w: recurrence end must be after the start time", ErrEventInvalidInput)
	}
	for _, m := range input.Reminders {
		if m < 1 || m > 1440 {
			return fmt.Errorf("%w: reminder offsets must be between 1 and 1440 minutes", ErrEventInvalidInput)
		}
	}
	return nil
}

// CreateEvent persists a new event, derives its recurrence rule when none is
// supplied, and invites the listed attendees as pending viewers. The owner is
// never invited to their own event.
func (s *CalendarEventService) CreateEvent(ctx context.Context, userID uint, input EventInput) (*models.CalendarEvent, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: missing user", ErrEventInvalidInput)
	}
	if err := ValidateEventInput(input); err != nil {
		return nil, err
	}

	event := s.buildEvent(userID, input)

	var invitees []models.User
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		eventRepoTx := repositories.NewCalendarEventRepositoryTx(tx)
		subRepoTx := repositories.NewCalendarSubscriptionRepositoryTx(tx)
		userRepoTx := repositories.NewUserRepositoryTx(tx)

		if err := eventRepoTx.Create(txCtx, event); err != nil {
			configslog.Log.Error("CreateEvent: insert failed", zap.Error(err))
			return ErrEventCreationFailed
		}

		if len(input.Attendees) == 0 {
			return nil
		}
		users, err := userRepoTx.FindByEmails(txCtx, input.Attendees)
		if err != nil {
			return ErrEventCreationFailed
		}
		for i := range users {
			if users[i].ID == userID {
				continue
			}
			sub := &models.CalendarSubscription{
				CalendarEventID: event.ID,
				UserID:          users[i].ID,
				Permission:      models.PermissionViewer,
				Status:          models.SubscriptionPending,
				SubscribedAt:    s.now(),
			}
			if err := subRepoTx.Create(txCtx, sub); err != nil {
				return ErrEventCreationFailed
			}
			invitees = append(invitees, users[i])
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	for i := range invitees {
		s.notifier.SendInvitation(ctx, event, &invitees[i])
	}
	configslog.SLog.Infof("event created: id=%d title=%q owner=%d", event.ID, event.Title, userID)
	return s.repo.FindByID(ctx, event.ID)
}

func (s *CalendarEventService) buildEvent(userID uint, input EventInput) *models.CalendarEvent {
	cfg := configs.Calendar()
	event := &models.CalendarEvent{
		UserID:          userID,
		Title:           input.Title,
		Description:     input.Description,
		Type:            input.Type,
		Color:           input.Color,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		IsAllDay:        input.IsAllDay,
		Location:        input.Location,
		MeetingLink:     input.MeetingLink,
		MeetingPlatform: input.MeetingPlatform,
		Timezone:        input.Timezone,
		Recurrence:      input.Recurrence,
		RecurrenceRules: input.RecurrenceRules,
		RecurrenceEnd:   input.RecurrenceEnd,
		Visibility:      input.Visibility,
		Status:          input.Status,
		Attendees:       input.Attendees,
		Reminders:       input.Reminders,
		CustomFields:    input.CustomFields,
	}
	if event.Type == "" {
		event.Type = models.EventTypeEvent
	}
	if event.Color == "" {
		if c, ok := cfg.TypeColors[string(event.Type)]; ok {
			event.Color = c
		} else {
			event.Color = cfg.DefaultTypeColor
		}
	}
	if event.Timezone == "" {
		event.Timezone = cfg.DefaultTimezone
	}
	if event.Visibility == "" {
		event.Visibility = models.VisibilityPrivate
	}
	if event.Status == "" {
		event.Status = models.StatusScheduled
	}
	if event.Recurrence == "" {
		event.Recurrence = models.RecurrenceNone
	}
	if len(event.Reminders) == 0 {
		event.Reminders = cfg.DefaultReminders
	}
	if event.Recurrence != models.RecurrenceNone {
		event.IsRecurring = true
		if event.RecurrenceRules == nil {
			event.RecurrenceRules = recurrence.Derive(event.Recurrence, event.StartTime)
		}
		chainID := uuid.NewString()
		event.RecurrenceChainID = &chainID
	}
	return event
}

// GetEvent returns the event when the user may view it.
func (s *CalendarEventService) GetEvent(ctx context.Context, id, userID uint) (*models.CalendarEvent, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if !policies.CanViewEvent(event, userID) {
		return nil, ErrEventForbidden
	}
	return event, nil
}

// ListEvents returns the visible event rows whose occurrences can fall in
// [start, end).
func (s *CalendarEventService) ListEvents(ctx context.Context, userID uint, start, end time.Time, params queryparams.ListParams) ([]models.CalendarEvent, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end of range must be after start", ErrEventInvalidInput)
	}
	return s.repo.FindVisibleBetween(ctx, userID, start, end, params)
}

// ListOccurrences expands the visible events into concrete occurrences inside
// [start, end), sorted by start time. Recurring events contribute one entry
// per occurrence, capped by the configured recurrence limits.
func (s *CalendarEventService) ListOccurrences(ctx context.Context, userID uint, start, end time.Time, params queryparams.ListParams) ([]Occurrence, error) {
	events, err := s.ListEvents(ctx, userID, start, end, params)
	if err != nil {
		return nil, err
	}
	limits := configs.Calendar().Recurrence

	var out []Occurrence
	for i := range events {
		event := &events[i]
		starts, err := recurrence.Expand(event, start, end, limits.MaxOccurrences, limits.MaxYears)
		if err != nil {
			configslog.Log.Warn("ListOccurrences: expansion failed",
				zap.Uint("eventID", event.ID), zap.Error(err))
			continue
		}
		duration := event.Duration()
		for _, st := range starts {
			out = append(out, Occurrence{Event: event, StartTime: st, EndTime: st.Add(duration)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

// ListUpcoming returns the next visible events from now on.
func (s *CalendarEventService) ListUpcoming(ctx context.Context, userID uint, limit int) ([]models.CalendarEvent, error) {
	return s.repo.FindUpcoming(ctx, userID, s.now(), limit)
}

// UpdateEvent applies the input to the event under a row lock. For recurring
// events the scope selects how far the change reaches: only this row, this
// row and the later chain rows, or the whole chain. Chain rows keep their own
// dates; start and end changes move every selected row by the same offset.
// A future-scoped edit that moves the series start splits the chain: a new
// row with the original values, clipped to end at the new start, keeps the
// occurrences that already happened.
func (s *CalendarEventService) UpdateEvent(ctx context.Context, id, userID uint, input EventInput, scope models.MutationScope) (*models.CalendarEvent, error) {
	if err := ValidateEventInput(input); err != nil {
		return nil, err
	}
	if scope == "" {
		scope = models.ScopeThis
	}
	if !models.ValidMutationScope(scope) {
		return nil, fmt.Errorf("%w: unknown mutation scope %q", ErrEventInvalidInput, scope)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		eventRepoTx := repositories.NewCalendarEventRepositoryTx(tx)

		event, err := eventRepoTx.FindByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if !policies.CanUpdateEvent(event, userID) {
			return ErrEventForbidden
		}

		startDelta := input.StartTime.Sub(event.StartTime)
		endDelta := input.EndTime.Sub(event.EndTime)

		targets := []models.CalendarEvent{*event}
		if scope != models.ScopeThis && event.RecurrenceChainID != nil {
			var from *time.Time
			if scope == models.ScopeFuture {
				from = &event.StartTime
			}
			chain, err := eventRepoTx.FindChainFrom(txCtx, *event.RecurrenceChainID, from)
			if err != nil {
				return ErrEventUpdateFailed
			}
			targets = chain
		}

		if scope == models.ScopeFuture {
			if segment := pastSegment(event, input.StartTime); segment != nil {
				if err := eventRepoTx.Create(txCtx, segment); err != nil {
					configslog.Log.Error("UpdateEvent: chain split failed",
						zap.Uint("id", event.ID), zap.Error(err))
					return ErrEventUpdateFailed
				}
			}
		}

		for i := range targets {
			row := &targets[i]
			applyEventInput(row, input)
			row.StartTime = row.StartTime.Add(startDelta)
			row.EndTime = row.EndTime.Add(endDelta)
			if row.ID == event.ID {
				// The edited row takes the input times verbatim.
				row.StartTime = input.StartTime
				row.EndTime = input.EndTime
			}
			if err := eventRepoTx.Update(txCtx, row); err != nil {
				configslog.Log.Error("UpdateEvent: save failed", zap.Uint("id", row.ID), zap.Error(err))
				return ErrEventUpdateFailed
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.repo.FindByID(ctx, id)
}

// pastSegment builds the chain row that preserves a recurring event's history
// when a future-scoped edit moves its start. The copy keeps the original
// values and chain ID and ends where the edited series begins. It is nil when
// no occurrence precedes the new start, so an in-place edit never splits.
func pastSegment(event *models.CalendarEvent, newStart time.Time) *models.CalendarEvent {
	if !event.IsRecurring || event.RecurrenceChainID == nil || !newStart.After(event.StartTime) {
		return nil
	}
	clip := newStart
	if event.RecurrenceEnd != nil && event.RecurrenceEnd.Before(clip) {
		clip = *event.RecurrenceEnd
	}
	segment := *event
	segment.BaseModel = models.BaseModel{}
	segment.RecurrenceEnd = &clip
	segment.User = models.User{}
	segment.Images = nil
	segment.Subscriptions = nil
	return &segment
}

// applyEventInput copies the writable non-identity fields onto a stored row.
// Times are handled by the caller because chain rows shift by offset.
func applyEventInput(event *models.CalendarEvent, input EventInput) {
	event.Title = input.Title
	event.Description = input.Description
	if input.Type != "" {
		event.Type = input.Type
	}
	if input.Color != "" {
		event.Color = input.Color
	}
	event.IsAllDay = input.IsAllDay
	event.Location = input.Location
	event.MeetingLink = input.MeetingLink
	event.MeetingPlatform = input.MeetingPlatform
	if input.Timezone != "" {
		event.Timezone = input.Timezone
	}
	if input.Visibility != "" {
		event.Visibility = input.Visibility
	}
	if input.Status != "" {
		event.Status = input.Status
	}
	if input.RecurrenceRules != nil {
		event.RecurrenceRules = input.RecurrenceRules
	}
	if input.RecurrenceEnd != nil {
		event.RecurrenceEnd = input.RecurrenceEnd
	}
	event.Attendees = input.Attendees
	if len(input.Reminders) > 0 {
		event.Reminders = input.Reminders
	}
	if input.CustomFields != nil {
		event.CustomFields = input.CustomFields
	}
}

// DeleteEvent soft-deletes the event, or part of its recurrence chain when a
// wider scope is requested.
func (s *CalendarEventService) DeleteEvent(ctx context.Context, id, userID uint, scope models.MutationScope) error {
	if scope == "" {
		scope = models.ScopeThis
	}
	if !models.ValidMutationScope(scope) {
		return fmt.Errorf("%w: unknown mutation scope %q", ErrEventInvalidInput, scope)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		eventRepoTx := repositories.NewCalendarEventRepositoryTx(tx)

		event, err := eventRepoTx.FindByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if !policies.CanDeleteEvent(event, userID) {
			return ErrEventForbidden
		}

		if scope == models.ScopeThis || event.RecurrenceChainID == nil {
			if err := eventRepoTx.Delete(txCtx, event, userID); err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return ErrEventNotFound
				}
				return ErrEventDeletionFailed
			}
			return nil
		}

		var from *time.Time
		if scope == models.ScopeFuture {
			from = &event.StartTime
		}
		affected, err := eventRepoTx.DeleteChainFrom(txCtx, *event.RecurrenceChainID, from, userID)
		if err != nil {
			return ErrEventDeletionFailed
		}
		configslog.SLog.Infof("event chain deleted: chain=%s scope=%s rows=%d", *event.RecurrenceChainID, scope, affected)
		return nil
	})
}

// ExportICal renders the event as an RFC 5545 document.
func (s *CalendarEventService) ExportICal(ctx context.Context, id, userID uint) ([]byte, error) {
	event, err := s.GetEvent(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return icalendar.Encode(event, configs.Calendar().ICalProdID, s.now())
}

// UploadImage stores an image for the event and records its metadata. The
// per-event image count and the upload size are bounded by configuration.
func (s *CalendarEventService) UploadImage(ctx context.Context, eventID, userID uint, originalName, mimeType string, data []byte, isPrimary bool) (*models.CalendarEventImage, error) {
	cfg := configs.Calendar()
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", ErrImageInvalid)
	}
	if len(data) > cfg.MaxImageSizeKB*1024 {
		return nil, fmt.Errorf("%w: upload exceeds %d KB", ErrImageInvalid, cfg.MaxImageSizeKB)
	}
	allowed := false
	for _, m := range cfg.AllowedImageMIMEs {
		if m == mimeType {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: unsupported content type %q", ErrImageInvalid, mimeType)
	}

	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if !policies.CanManageImages(event, userID) {
		return nil, ErrEventForbidden
	}
	count, err := s.imageRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if count >= int64(cfg.MaxImagesPerEvent) {
		return nil, ErrImageLimitReached
	}

	saved, err := s.store.Save(eventID, originalName, mimeType, data)
	if err != nil {
		configslog.Log.Error("UploadImage: store failed", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, ErrImageInvalid
	}

	image := &models.CalendarEventImage{
		CalendarEventID: eventID,
		ImagePath:       saved.ImagePath,
		ThumbnailPath:   saved.ThumbnailPath,
		OriginalName:    originalName,
		MimeType:        mimeType,
		Size:            saved.Size,
		DisplayOrder:    int(count),
		IsPrimary:       isPrimary || count == 0,
	}
	if saved.Width > 0 {
		image.Metadata = map[string]any{"width": saved.Width, "height": saved.Height}
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		imageRepoTx := repositories.NewCalendarEventImageRepositoryTx(tx)
		if err := imageRepoTx.Create(txCtx, image); err != nil {
			return err
		}
		if image.IsPrimary {
			return imageRepoTx.SetPrimary(txCtx, eventID, image.ID)
		}
		return nil
	})
	if txErr != nil {
		// Roll the stored files back so disk and database stay in step.
		if rmErr := s.store.Remove(saved.ImagePath, saved.ThumbnailPath); rmErr != nil {
			configslog.Log.Warn("UploadImage: orphan cleanup failed", zap.Error(rmErr))
		}
		configslog.Log.Error("UploadImage: insert failed", zap.Uint("eventID", eventID), zap.Error(txErr))
		return nil, ErrImageInvalid
	}
	return image, nil
}

// ListImages returns the event's images in display order.
func (s *CalendarEventService) ListImages(ctx context.Context, eventID, userID uint) ([]models.CalendarEventImage, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if !policies.CanViewEvent(event, userID) {
		return nil, ErrEventForbidden
	}
	return s.imageRepo.ListByEvent(ctx, eventID)
}

// SetPrimaryImage flags one image as the event's primary image.
func (s *CalendarEventService) SetPrimaryImage(ctx context.Context, eventID, imageID, userID uint) error {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if !policies.CanManageImages(event, userID) {
		return ErrEventForbidden
	}
	if err := s.imageRepo.SetPrimary(ctx, eventID, imageID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrImageNotFound
		}
		return err
	}
	return nil
}

// DeleteImage removes the image row and its stored files.
func (s *CalendarEventService) DeleteImage(ctx context.Context, eventID, imageID, userID uint) error {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if !policies.CanManageImages(event, userID) {
		return ErrEventForbidden
	}
	image, err := s.imageRepo.FindByEventAndID(ctx, eventID, imageID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrImageNotFound
		}
		return err
	}
	if err := s.imageRepo.Delete(ctx, eventID, imageID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrImageNotFound
		}
		return err
	}
	if err := s.store.Remove(image.ImagePath, image.ThumbnailPath); err != nil {
		configslog.Log.Warn("DeleteImage: file removal failed",
			zap.Uint("imageID", imageID), zap.Error(err))
	}
	return nil
}

var _ ICalendarEventService = (*CalendarEventService)(nil)
