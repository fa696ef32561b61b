package event

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hackside/backend/logger"
)

// Uploader stores binary objects and returns their public URL.
// Satisfied by s3bucket.S3Bucket.
type Uploader interface {
	Upload(ctx context.Context, content []byte, key string, mediaType string) (string, error)
}

type EventSrvc struct {
	repo   EventRepo
	images Uploader
}

func NewEventSrvc(repo EventRepo, images Uploader) *EventSrvc {
	return &EventSrvc{
		repo:   repo,
		images: images,
	}
}

type CreateEventParams struct {
	Name        string
	Summary     string
	Description string
	Date        time.Time
	RegDeadline time.Time
	Prize       string
	MaxTeams    int
	MinMembers  int
	MaxMembers  int
	Rounds      []Round
}

func (s *EventSrvc) Create(ctx context.Context, organizer uuid.UUID, p CreateEventParams) (*Event, error) {
	if p.Name == "" {
		return nil, newErrEventNameEmpty()
	}
	if p.RegDeadline.After(p.Date) {
		return nil, newErrDeadlineAfterEvent()
	}
	if p.MinMembers < 1 || p.MaxMembers < p.MinMembers || p.MaxTeams < 1 {
		return nil, newErrInvalidTeamBounds()
	}

	rounds := p.Rounds
	if len(rounds) == 0 {
		rounds = []Round{
			{ID: RoundPpt, Name: "Presentation"},
			{ID: RoundRepo, Name: "Repository"},
			{ID: RoundViva, Name: "Viva"},
		}
	}

	row := &EventRow{
		Uuid:          uuid.New().String(),
		OrganizerUuid: organizer.String(),
		Name:          p.Name,
		Summary:       p.Summary,
		Description:   p.Description,
		Date:          p.Date,
		RegDeadline:   p.RegDeadline,
		Prize:         p.Prize,
		MaxTeams:      p.MaxTeams,
		MinMembers:    p.MinMembers,
		MaxMembers:    p.MaxMembers,
		Rounds:        rounds,
		CreatedAt:     time.Now(),
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	return rowToEvent(row)
}

func (s *EventSrvc) Get(ctx context.Context, eventUuid uuid.UUID) (*Event, error) {
	row, err := s.getRow(ctx, eventUuid)
	if err != nil {
		return nil, err
	}
	return rowToEvent(row)
}

// ListByOrganizer returns the events created by the given user.
func (s *EventSrvc) ListByOrganizer(ctx context.Context, organizer uuid.UUID) ([]*Event, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	events := make([]*Event, 0)
	for _, row := range rows {
		if row.OrganizerUuid != organizer.String() {
			continue
		}
		event, err := rowToEvent(row)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// Image kinds accepted by UploadImage.
const (
	ImageKindBanner = "banner"
	ImageKindLogo   = "logo"
)

// UploadImage downscales the image, stores it and records its URL on the
// event. Only the organizer may change event images.
func (s *EventSrvc) UploadImage(ctx context.Context, caller uuid.UUID, eventUuid uuid.UUID, kind string, content []byte) (string, error) {
	row, err := s.getRow(ctx, eventUuid)
	if err != nil {
		return "", err
	}
	if row.OrganizerUuid != caller.String() {
		return "", newErrNotOrganizer()
	}

	maxWidth := uint(bannerMaxWidth)
	if kind == ImageKindLogo {
		maxWidth = logoMaxWidth
	}

	compressed, err := compressImage(content, maxWidth)
	if err != nil {
		return "", newErrUnsupportedImage().SetDebug(err)
	}

	key := fmt.Sprintf("events/%s/%s.jpg", row.Uuid, kind)
	url, err := s.images.Upload(ctx, compressed, key, "image/jpeg")
	if err != nil {
		return "", newErrInternalSE().SetDebug(err)
	}

	switch kind {
	case ImageKindLogo:
		row.LogoUrl = url
	default:
		row.BannerUrl = url
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return "", newErrInternalSE().SetDebug(err)
	}

	logger.FromContext(ctx).Info("event image uploaded",
		"event", row.Uuid, "kind", kind, "bytes", len(compressed))
	return url, nil
}

func (s *EventSrvc) getRow(ctx context.Context, eventUuid uuid.UUID) (*EventRow, error) {
	row, err := s.repo.Get(ctx, eventUuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	if row == nil {
		return nil, newErrEventNotFound()
	}
	return row, nil
}

func rowToEvent(row *EventRow) (*Event, error) {
	eventUuid, err := uuid.Parse(row.Uuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	organizerUuid, err := uuid.Parse(row.OrganizerUuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	return &Event{
		UUID:          eventUuid,
		OrganizerUuid: organizerUuid,
		Name:          row.Name,
		Summary:       row.Summary,
		Description:   row.Description,
		Date:          row.Date,
		RegDeadline:   row.RegDeadline,
		Prize:         row.Prize,
		MaxTeams:      row.MaxTeams,
		MinMembers:    row.MinMembers,
		MaxMembers:    row.MaxMembers,
		Rounds:        row.Rounds,
		BannerUrl:     row.BannerUrl,
		LogoUrl:       row.LogoUrl,
		CreatedAt:     row.CreatedAt,
	}, nil
}
