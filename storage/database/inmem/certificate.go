package inmemdb

import (
	"sort"

	"github.com/trezcool/elimu/core/catalog"
)

type certificateRepository struct {
	db *certificateTable
}

func NewCertificateRepository(db *DB) catalog.CertificateRepository {
	return &certificateRepository{db: db.certificate}
}

func (repo *certificateRepository) query() []catalog.Certificate {
	certs := make([]catalog.Certificate, 0, len(repo.db.table))
	for _, cert := range repo.db.table {
		certs = append(certs, *cert)
	}
	sort.Slice(certs, func(i, j int) bool { return certs[i].IssuedAt.Before(certs[j].IssuedAt) })
	return certs
}

func (repo *certificateRepository) CreateCertificate(cert catalog.Certificate) (catalog.Certificate, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.table[cert.ID] = &cert
	return cert, nil
}

func (repo *certificateRepository) GetStudentCertificates(studentID string) ([]catalog.Certificate, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	certs := make([]catalog.Certificate, 0)
	for _, cert := range repo.query() {
		if cert.StudentID == studentID {
			certs = append(certs, cert)
		}
	}
	return certs, nil
}

func (repo *certificateRepository) QueryAllCertificates() ([]catalog.Certificate, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}
