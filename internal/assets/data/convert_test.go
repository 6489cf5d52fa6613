package data

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/lk2023060901/ai-translate-backend/internal/assets/biz"
	"github.com/lk2023060901/ai-translate-backend/internal/assets/models"
	"github.com/stretchr/testify/assert"
)

func TestSectionContractInfoMapping(t *testing.T) {
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	section := &biz.Section{
		ID:           "s1",
		Hash:         "h1",
		OriginText:   "Hello",
		Desc:         "greeting",
		Status:       biz.StatusCorrected,
		Parent:       []string{"f1"},
		ContractInfo: &biz.ContractInfo{UserID: "u1", ContractedAt: at},
	}

	po := toSectionPO(section)
	assert.Equal(t, "greeting", po.Description)
	if assert.NotNil(t, po.ContractUser) {
		assert.Equal(t, "u1", *po.ContractUser)
	}

	if diff := cmp.Diff(section, toSection(po)); diff != "" {
		t.Errorf("section mismatch (-want +got):\n%s", diff)
	}
}

func TestSectionWithoutContract(t *testing.T) {
	po := toSectionPO(&biz.Section{ID: "s1", Hash: "h1"})
	assert.Nil(t, po.ContractUser)
	assert.Nil(t, po.ContractedAt)

	s := toSection(&models.Section{ID: "s1", Hash: "h1"})
	assert.Nil(t, s.ContractInfo)
	assert.NotNil(t, s.Parent)
}

func TestFileContractorsMapping(t *testing.T) {
	file := &biz.File{
		ID:          "f1",
		Name:        "a.txt",
		Sections:    []string{"h1", "h2"},
		Contractors: []biz.Contractor{{UserID: "u1", Count: 2}},
		Translated:  1,
	}

	po := toFilePO(file)
	assert.Equal(t, models.Contractors{{User: "u1", Count: 2}}, po.Contractors)

	if diff := cmp.Diff(file, toFile(po)); diff != "" {
		t.Errorf("file mismatch (-want +got):\n%s", diff)
	}

	empty := toFile(&models.File{ID: "f2"})
	assert.NotNil(t, empty.Sections)
	assert.NotNil(t, empty.Contractors)
}
