package store

import (
	"context"

	"interview-scheduler-backend/internal/model"
)

// GetPanelist fetches a panelist by id.
func (s *gormStore) GetPanelist(ctx context.Context, id string) (*model.Panelist, error) {
	var p model.Panelist
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

// ListPanelists returns panelists eligible for the given interview type,
// or all panelists when interviewType is empty. Eligibility filtering on the
// JSON interview_types column happens in memory; the directory is small.
func (s *gormStore) ListPanelists(ctx context.Context, interviewType string) ([]model.Panelist, error) {
	var panelists []model.Panelist
	if err := s.db.WithContext(ctx).Order("name").Find(&panelists).Error; err != nil {
		return nil, err
	}
	if interviewType == "" {
		return panelists, nil
	}

	eligible := make([]model.Panelist, 0, len(panelists))
	for _, p := range panelists {
		for _, t := range p.InterviewTypes {
			if t == interviewType {
				eligible = append(eligible, p)
				break
			}
		}
	}
	return eligible, nil
}

// GetPreference fetches a candidate's scheduling preferences, if any.
func (s *gormStore) GetPreference(ctx context.Context, candidateID string) (*model.CandidatePreference, error) {
	var pref model.CandidatePreference
	if err := s.db.WithContext(ctx).First(&pref, "candidate_id = ?", candidateID).Error; err != nil {
		return nil, translateErr(err)
	}
	return &pref, nil
}
