package repository

import (
	"bytes"
	"context"
	"path/filepath"

	"hospital-directory/internal/domain/entity"
	domainRepo "hospital-directory/internal/domain/repository"
	"hospital-directory/internal/metrics"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

var utf8BOM = []byte("\xEF\xBB\xBF")

type csvRecordStore struct {
	fs  afero.Fs
	dir string
	log *logrus.Logger
}

// NewCSVRecordStore reads <dir>/doctors.csv and <dir>/hospitals.csv from fs
// on every call. Nothing is cached between loads.
func NewCSVRecordStore(fs afero.Fs, dir string, log *logrus.Logger) domainRepo.RecordStore {
	return &csvRecordStore{
		fs:  fs,
		dir: dir,
		log: log,
	}
}

func (s *csvRecordStore) LoadDoctors(ctx context.Context) []entity.Doctor {
	rows := readDataset[doctorRow](ctx, s, entity.DatasetDoctors)

	doctors := make([]entity.Doctor, 0, len(rows))
	for i := range rows {
		doctors = append(doctors, rows[i].toEntity())
	}
	return doctors
}

func (s *csvRecordStore) LoadHospitals(ctx context.Context) []entity.Hospital {
	rows := readDataset[hospitalRow](ctx, s, entity.DatasetHospitals)

	hospitals := make([]entity.Hospital, 0, len(rows))
	for i := range rows {
		hospitals = append(hospitals, rows[i].toEntity())
	}
	return hospitals
}

// readDataset decodes one dataset using its header row for field names.
// Any read or decode failure is logged and reported as no rows.
func readDataset[R any](ctx context.Context, s *csvRecordStore, dataset entity.Dataset) []R {
	path := filepath.Join(s.dir, string(dataset)+".csv")
	log := s.log.WithContext(ctx).WithField("dataset", string(dataset))

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		log.Warnf("Failed to read dataset: %+v", err)
		metrics.DatasetLoadFailed(string(dataset))
		return nil
	}

	var rows []R
	if err := gocsv.UnmarshalBytes(bytes.TrimPrefix(data, utf8BOM), &rows); err != nil {
		log.Warnf("Failed to parse dataset: %+v", err)
		metrics.DatasetLoadFailed(string(dataset))
		return nil
	}

	metrics.DatasetLoaded(string(dataset), len(rows))
	log.Debugf("Loaded %d records from %s", len(rows), path)
	return rows
}
