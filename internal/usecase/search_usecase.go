package usecase

import (
	"context"

	"hospital-directory/internal/converter"
	"hospital-directory/internal/delivery/dto"
	"hospital-directory/internal/domain/entity"
	"hospital-directory/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type SearchUsecase interface {
	Search(ctx context.Context, req *dto.SearchRequest) *dto.SearchResponse
}

type searchUsecase struct {
	log   *logrus.Logger
	store repository.RecordStore
}

func NewSearchUsecase(log *logrus.Logger, store repository.RecordStore) SearchUsecase {
	return &searchUsecase{
		log:   log,
		store: store,
	}
}

// Search reloads the selected datasets and keeps the records matching the
// query. It cannot fail: a dataset that did not load contributes no records.
func (u *searchUsecase) Search(ctx context.Context, req *dto.SearchRequest) *dto.SearchResponse {
	selector := entity.ParseSelector(req.Filter)
	query := entity.NormalizeQuery(req.Query)

	var (
		doctors   []entity.Doctor
		hospitals []entity.Hospital
	)

	g, gctx := errgroup.WithContext(ctx)
	if selector.IncludesDoctors() {
		g.Go(func() error {
			doctors = filterDoctors(u.store.LoadDoctors(gctx), query)
			return nil
		})
	}
	if selector.IncludesHospitals() {
		g.Go(func() error {
			hospitals = filterHospitals(u.store.LoadHospitals(gctx), query)
			return nil
		})
	}
	// loaders never return errors
	_ = g.Wait()

	u.log.WithContext(ctx).WithFields(logrus.Fields{
		"selector":  selector,
		"doctors":   len(doctors),
		"hospitals": len(hospitals),
	}).Debug("Search completed")

	return &dto.SearchResponse{
		Doctors:   converter.DoctorsToResponses(doctors),
		Hospitals: converter.HospitalsToResponses(hospitals),
	}
}

func filterDoctors(doctors []entity.Doctor, query string) []entity.Doctor {
	if query == "" {
		return doctors
	}
	matched := make([]entity.Doctor, 0, len(doctors))
	for i := range doctors {
		if doctors[i].Matches(query) {
			matched = append(matched, doctors[i])
		}
	}
	return matched
}

func filterHospitals(hospitals []entity.Hospital, query string) []entity.Hospital {
	if query == "" {
		return hospitals
	}
	matched := make([]entity.Hospital, 0, len(hospitals))
	for i := range hospitals {
		if hospitals[i].Matches(query) {
			matched = append(matched, hospitals[i])
		}
	}
	return matched
}
