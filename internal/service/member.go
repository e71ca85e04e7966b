package service

import (
	"context"
	"log/slog"

	"github.com/fansite-cms/api/internal/blob"
	"github.com/fansite-cms/api/internal/model"
	"github.com/fansite-cms/api/internal/recurrence"
)

const memberBlobPrefix = "members"

// MemberRepository defines the interface for member profile storage
type MemberRepository interface {
	List(ctx context.Context) ([]*model.MemberProfile, error)
	GetByID(ctx context.Context, id string) (*model.MemberProfile, error)
	Upsert(ctx context.Context, profile *model.MemberProfile) error
}

// Roster is the fixed set of profile pages.
type Roster interface {
	Roster() []recurrence.RosterEntry
	Lookup(id string) (recurrence.RosterEntry, bool)
}

// MemberService handles member profile business logic
type MemberService struct {
	repo   MemberRepository
	roster Roster
	blobs  blob.Store
}

// MemberServiceConfig holds configuration for the member service
type MemberServiceConfig struct {
	Repo   MemberRepository
	Roster Roster
	Blobs  blob.Store
}

// NewMemberService creates a new member service
func NewMemberService(cfg MemberServiceConfig) *MemberService {
	return &MemberService{
		repo:   cfg.Repo,
		roster: cfg.Roster,
		blobs:  cfg.Blobs,
	}
}

// List returns one profile per roster entry in roster order. Entries
// without a stored document get an empty profile.
func (s *MemberService) List(ctx context.Context) ([]*model.MemberProfile, error) {
	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.MemberProfile, len(stored))
	for _, p := range stored {
		byID[p.ID] = p
	}

	roster := s.roster.Roster()
	profiles := make([]*model.MemberProfile, 0, len(roster))
	for _, entry := range roster {
		if p, ok := byID[entry.ID]; ok {
			profiles = append(profiles, withDefaults(p, entry))
			continue
		}
		profiles = append(profiles, emptyProfile(entry))
	}
	return profiles, nil
}

// Get returns the profile for a roster id
func (s *MemberService) Get(ctx context.Context, id string) (*model.MemberProfile, error) {
	entry, ok := s.roster.Lookup(id)
	if !ok {
		return nil, ErrMemberNotFound
	}

	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return emptyProfile(entry), nil
	}
	return withDefaults(profile, entry), nil
}

// Update replaces the profile fields that were sent. Stored images not
// listed in ExistingImages are dropped and deleted after the write; new
// uploads are appended. The total is bounded by model.MaxMemberImages.
func (s *MemberService) Update(ctx context.Context, id string, req *model.UpdateMemberRequest, files []File) (*model.MemberProfile, error) {
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}

	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	kept, dropped := profile.Images, []string(nil)
	if req.ExistingImages != nil {
		kept, dropped = partitionImages(profile.Images, req.ExistingImages)
	}
	if len(kept)+len(files) > model.MaxMemberImages {
		return nil, ErrTooManyImages
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Texts != nil {
		profile.Texts = req.Texts
	}
	if req.SNS != nil {
		sns := make(map[string]string, len(req.SNS))
		for platform, link := range req.SNS {
			if link != "" {
				sns[platform] = link
			}
		}
		profile.SNS = sns
	}

	uploaded, err := storeFiles(ctx, s.blobs, memberBlobPrefix+"/"+id, files, DefaultUploadConcurrency)
	if err != nil {
		return nil, err
	}
	profile.Images = append(append([]string{}, kept...), uploaded...)

	if err := s.repo.Upsert(ctx, profile); err != nil {
		slog.Error("member write failed after upload",
			slog.String("member_id", id),
			slog.String("error", err.Error()))
		discardBlobs(ctx, s.blobs, uploaded...)
		return nil, err
	}

	discardBlobs(ctx, s.blobs, dropped...)
	return profile, nil
}

// partitionImages keeps the current images listed in keep, in their stored
// order. URLs in keep that are not stored are ignored.
func partitionImages(current, keep []string) (kept, dropped []string) {
	want := make(map[string]bool, len(keep))
	for _, u := range keep {
		want[u] = true
	}
	kept = []string{}
	for _, u := range current {
		if want[u] {
			kept = append(kept, u)
			delete(want, u)
		} else {
			dropped = append(dropped, u)
		}
	}
	return kept, dropped
}

func emptyProfile(entry recurrence.RosterEntry) *model.MemberProfile {
	return &model.MemberProfile{
		ID:     entry.ID,
		Name:   entry.Name,
		Texts:  []string{},
		Images: []string{},
		SNS:    map[string]string{},
	}
}

func withDefaults(p *model.MemberProfile, entry recurrence.RosterEntry) *model.MemberProfile {
	if p.Name == "" {
		p.Name = entry.Name
	}
	p.Texts = nonNil(p.Texts)
	p.Images = nonNil(p.Images)
	if p.SNS == nil {
		p.SNS = map[string]string{}
	}
	return p
}
