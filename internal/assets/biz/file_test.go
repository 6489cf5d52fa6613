package biz

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashes(sections []*Section) []string {
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.Hash)
	}
	return out
}

func TestGenerateHash(t *testing.T) {
	sum := md5.Sum([]byte("helloworld"))
	assert.Equal(t, hex.EncodeToString(sum[:]), GenerateHash("hello", "world"))

	// no separator between the two parts
	assert.Equal(t, GenerateHash("ab", "c"), GenerateHash("a", "bc"))
	assert.Len(t, GenerateHash("", ""), 32)
}

func TestCreateFileUpsert(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	first, err := fx.fileUC.Create(ctx, CreateFileInput{Name: "ch1.txt", AssetsPath: "files/a", Type: 2})
	require.NoError(t, err)
	require.NotNil(t, first.LastUpdated)

	second, err := fx.fileUC.Create(ctx, CreateFileInput{Name: "ch1.txt", AssetsPath: "files/b", Type: 7})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "files/b", second.AssetsPath)
	assert.True(t, second.LastUpdated.After(*first.LastUpdated))
	assert.Equal(t, 2, second.Type, "type is only set when the file is first created")
	assert.Len(t, fx.files.byID, 1)
}

func TestCreateFileNotSaved(t *testing.T) {
	fx := newFixture()
	fx.files.createErr = errors.New("duplicate key value violates unique constraint")

	file, err := fx.fileUC.Create(context.Background(), CreateFileInput{Name: "race.txt"})
	assert.Nil(t, file)
	assert.ErrorIs(t, err, ErrFileNotSaved)
	assert.Empty(t, fx.files.byID)
}

func TestCreateFileRequiresName(t *testing.T) {
	fx := newFixture()
	_, err := fx.fileUC.Create(context.Background(), CreateFileInput{})
	assert.ErrorIs(t, err, ErrFileNameRequired)
}

func TestMergeSectionsDeduplicates(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	file := fx.mustFile("dup.txt")

	candidates := []SectionInput{
		{OriginText: "Hello", Desc: "greeting"},
		{OriginText: "Hello", Desc: "greeting"},
	}
	count, err := fx.fileUC.MergeSections(ctx, file, candidates)
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	assert.Equal(t, []string{GenerateHash("Hello", "greeting")}, file.Sections)
	assert.Len(t, fx.sections.byHash, 1)

	// merging the same content again adds nothing
	count, err = fx.fileUC.MergeSections(ctx, file, candidates[:1])
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Len(t, file.Sections, 1)

	stored, err := fx.files.FindByID(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, file.Sections, stored.Sections)
}

func TestMergeSectionsCounters(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	file := fx.mustFile("counters.txt")

	count, err := fx.fileUC.MergeSections(ctx, file, []SectionInput{
		{OriginText: "a", Status: StatusNew},
		{OriginText: "b", Status: StatusTranslated},
		{OriginText: "c", Status: StatusCorrected},
		{OriginText: "d", Status: StatusPolished},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, count)
	assert.Equal(t, 3, file.Translated)
	assert.Equal(t, 2, file.Corrected)
	assert.Equal(t, 1, file.Polished)
}

func TestMergeSectionsNewOnlyBumpsNothing(t *testing.T) {
	fx := newFixture()
	file := fx.mustFile("fresh.txt")

	count, err := fx.fileUC.MergeSections(context.Background(), file, []SectionInput{
		{OriginText: "one"},
		{OriginText: "two"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	assert.Zero(t, file.Translated)
	assert.Zero(t, file.Corrected)
	assert.Zero(t, file.Polished)
}

func TestMergeSectionsReusesAcrossFiles(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	a := fx.mustFile("a.txt")
	b := fx.mustFile("b.txt")
	in := []SectionInput{{OriginText: "shared", Desc: "line"}}

	_, err := fx.fileUC.MergeSections(ctx, a, in)
	require.NoError(t, err)
	count, err := fx.fileUC.MergeSections(ctx, b, in)
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	assert.Len(t, fx.sections.byHash, 1)

	section := fx.sections.byHash[GenerateHash("shared", "line")]
	if diff := cmp.Diff([]string{a.ID, b.ID}, section.Parent); diff != "" {
		t.Errorf("parent mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeSectionsReuseCountsCurrentStatus(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	a := fx.mustFile("first.txt")
	b := fx.mustFile("second.txt")
	in := []SectionInput{
		{OriginText: "translated later", Desc: "x"},
		{OriginText: "polished already", Desc: "y", Status: StatusPolished},
	}

	_, err := fx.fileUC.MergeSections(ctx, a, in)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Translated)

	_, err = fx.secUC.Commit(ctx, GenerateHash("translated later", "x"), "u1", "done")
	require.NoError(t, err)

	count, err := fx.fileUC.MergeSections(ctx, b, in)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, b.Translated)
	assert.Equal(t, 1, b.Corrected)
	assert.Equal(t, 1, b.Polished)

	// counters of the first file stay as they were when the sections were added
	stored, err := fx.files.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Translated)
}

func TestMergeSectionsUsesSuppliedHash(t *testing.T) {
	fx := newFixture()
	file := fx.mustFile("hashed.txt")

	_, err := fx.fileUC.MergeSections(context.Background(), file, []SectionInput{
		{OriginText: "x", Hash: "precomputed"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"precomputed"}, file.Sections)
}

func TestMergeSectionsAborts(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	file := fx.mustFile("abort.txt")
	savesBefore := fx.files.saves

	failing := GenerateHash("second", "")
	fx.sections.createErr = func(hash string) error {
		if hash == failing {
			return ErrSectionExists
		}
		return nil
	}

	count, err := fx.fileUC.MergeSections(ctx, file, []SectionInput{
		{OriginText: "first"},
		{OriginText: "second"},
		{OriginText: "third"},
	})

	assert.Zero(t, count)
	assert.ErrorIs(t, err, ErrMergeAborted)
	assert.ErrorIs(t, err, ErrSectionExists)
	assert.Equal(t, savesBefore, fx.files.saves, "file must not be saved")

	// work before the failure is not rolled back
	assert.Contains(t, fx.sections.byHash, GenerateHash("first", ""))
	assert.NotContains(t, fx.sections.byHash, GenerateHash("third", ""))

	stored, err := fx.files.FindByID(ctx, file.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Sections)
}

func seedFile(t *testing.T, fx *fixture, name string, n int) *File {
	t.Helper()
	file := fx.mustFile(name)
	in := make([]SectionInput, 0, n)
	for i := 0; i < n; i++ {
		in = append(in, SectionInput{OriginText: strings.Repeat("s", i+1)})
	}
	_, err := fx.fileUC.MergeSections(context.Background(), file, in)
	require.NoError(t, err)
	return file
}

func TestContractSections(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	file := seedFile(t, fx, "contract.txt", 5)

	file, err := fx.fileUC.ContractSections(ctx, file, "u1", 3)
	require.NoError(t, err)
	assert.Equal(t, []Contractor{{UserID: "u1", Count: 3}}, file.Contractors)

	for i, hash := range file.Sections {
		section := fx.sections.byHash[hash]
		if i < 3 {
			assert.True(t, section.VerifyContractor("u1"), "section %d", i)
		} else {
			assert.False(t, section.IsContracted(), "section %d", i)
		}
	}

	file, err = fx.fileUC.ContractSections(ctx, file, "u1", 2)
	require.NoError(t, err)
	assert.Equal(t, []Contractor{{UserID: "u1", Count: 5}}, file.Contractors)

	stored, err := fx.files.FindByID(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, file.Contractors, stored.Contractors)
}

func TestContractSectionsSkipsContracted(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	file := seedFile(t, fx, "skip.txt", 3)

	file, err := fx.fileUC.ContractSections(ctx, file, "u1", 1)
	require.NoError(t, err)
	file, err = fx.fileUC.ContractSections(ctx, file, "u2", 5)
	require.NoError(t, err)

	assert.Equal(t, []Contractor{{UserID: "u1", Count: 1}, {UserID: "u2", Count: 2}}, file.Contractors)
	assert.True(t, fx.sections.byHash[file.Sections[0]].VerifyContractor("u1"))
	assert.True(t, fx.sections.byHash[file.Sections[2]].VerifyContractor("u2"))
}

func TestContractSectionsZeroStillRecordsContractor(t *testing.T) {
	fx := newFixture()
	file := seedFile(t, fx, "zero.txt", 2)

	file, err := fx.fileUC.ContractSections(context.Background(), file, "u9", 0)
	require.NoError(t, err)
	assert.Equal(t, []Contractor{{UserID: "u9", Count: 0}}, file.Contractors)
}

func TestContractSectionsDanglingHash(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	file := seedFile(t, fx, "dangling.txt", 2)
	delete(fx.sections.byHash, file.Sections[1])
	contractorsBefore := len(file.Contractors)

	got, err := fx.fileUC.ContractSections(ctx, file, "u1", 5)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNoSpecifiedSection)

	stored, err := fx.files.FindByID(ctx, file.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Contractors, contractorsBefore)
}

func TestContractSectionsInvalidInput(t *testing.T) {
	fx := newFixture()
	file := seedFile(t, fx, "invalid.txt", 1)

	_, err := fx.fileUC.ContractSections(context.Background(), file, "", 1)
	assert.ErrorIs(t, err, ErrUserRequired)
	_, err = fx.fileUC.ContractSections(context.Background(), file, "u1", -1)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestGetContractedSections(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	file := seedFile(t, fx, "mine.txt", 4)

	file, err := fx.fileUC.ContractSections(ctx, file, "u1", 2)
	require.NoError(t, err)
	_, err = fx.fileUC.ContractSections(ctx, file, "u2", 1)
	require.NoError(t, err)

	mine, err := fx.fileUC.GetContractedSections(ctx, file, "u1")
	require.NoError(t, err)
	assert.Equal(t, file.Sections[:2], hashes(mine))

	none, err := fx.fileUC.GetContractedSections(ctx, file, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)

	delete(fx.sections.byHash, file.Sections[3])
	_, err = fx.fileUC.GetContractedSections(ctx, file, "u1")
	assert.ErrorIs(t, err, ErrNoSpecifiedSection)
}

func TestGetSections(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	file := fx.mustFile("paged.txt")
	for _, h := range []string{"h1", "h2", "h3"} {
		fx.sections.put(h, StatusNew)
	}
	file.Sections = []string{"h1", "h2", "h3"}
	before := append([]string{}, file.Sections...)

	tests := []struct {
		name  string
		start int
		count int
		want  []string
	}{
		{name: "first page", start: 0, count: 2, want: []string{"h1", "h2"}},
		{name: "to the end", start: 1, count: 0, want: []string{"h2", "h3"}},
		{name: "all", start: 0, count: 0, want: []string{"h1", "h2", "h3"}},
		{name: "clamped", start: 2, count: 10, want: []string{"h3"}},
		{name: "past the end", start: 3, count: 1, want: []string{}},
		{name: "huge count", start: 1, count: math.MaxInt, want: []string{"h2", "h3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fx.fileUC.GetSections(ctx, file, tt.start, tt.count)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hashes(got))
		})
	}

	// repeated reads never drain the list
	if diff := cmp.Diff(before, file.Sections); diff != "" {
		t.Errorf("sections mutated (-want +got):\n%s", diff)
	}
}

func TestGetSectionsErrors(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	file := fx.mustFile("bad.txt")
	file.Sections = []string{"missing"}

	_, err := fx.fileUC.GetSections(ctx, file, -1, 1)
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = fx.fileUC.GetSections(ctx, file, 0, -1)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = fx.fileUC.GetSections(ctx, file, 0, 1)
	assert.ErrorIs(t, err, ErrNoSpecifiedSection)
}

func TestGetPublishedText(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	file := seedFile(t, fx, "published.txt", 3)

	texts, err := fx.fileUC.GetPublishedText(ctx, file)
	require.NoError(t, err)
	assert.Empty(t, texts)

	c1, err := fx.secUC.Commit(ctx, file.Sections[0], "u1", "Bonjour")
	require.NoError(t, err)
	_, err = fx.secUC.Publish(ctx, file.Sections[0], c1.ID)
	require.NoError(t, err)

	c3, err := fx.secUC.Commit(ctx, file.Sections[2], "u1", "Au revoir")
	require.NoError(t, err)
	_, err = fx.secUC.Publish(ctx, file.Sections[2], c3.ID)
	require.NoError(t, err)

	texts, err = fx.fileUC.GetPublishedText(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bonjour", "Au revoir"}, texts)

	// a dangling published commit is skipped
	delete(fx.sections.commits, c1.ID)
	texts, err = fx.fileUC.GetPublishedText(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, []string{"Au revoir"}, texts)
}

func TestListFilesNewestFirst(t *testing.T) {
	fx := newFixture()
	fx.mustFile("old.txt")
	fx.mustFile("new.txt")

	files, total, err := fx.fileUC.List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, files, 2)
	assert.Equal(t, "new.txt", files[0].Name)
}

func TestUploadAsset(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	file, err := fx.fileUC.UploadAsset(ctx, "story.txt", 1, strings.NewReader("once upon a time"), 16, "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "files/story.txt", file.AssetsPath)
	assert.Equal(t, []byte("once upon a time"), fx.assets.objects["files/story.txt"])

	url, err := fx.fileUC.AssetURL(ctx, file)
	require.NoError(t, err)
	assert.Contains(t, url, "files/story.txt")

	byName, err := fx.fileUC.GetByName(ctx, "story.txt")
	require.NoError(t, err)
	assert.Equal(t, file.ID, byName.ID)
}

func TestUploadAssetStorageFailure(t *testing.T) {
	fx := newFixture()
	fx.assets.putErr = errors.New("connection refused")

	_, err := fx.fileUC.UploadAsset(context.Background(), "x.txt", 0, strings.NewReader("x"), 1, "")
	assert.ErrorIs(t, err, ErrAssetStorage)
	assert.Empty(t, fx.files.byID)

	_, err = fx.fileUC.AssetURL(context.Background(), &File{Name: "empty"})
	assert.ErrorIs(t, err, ErrAssetStorage)
}

func TestAssetURLMissingObject(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	file, err := fx.fileUC.UploadAsset(ctx, "gone.txt", 0, strings.NewReader("x"), 1, "text/plain")
	require.NoError(t, err)
	delete(fx.assets.objects, file.AssetsPath)

	url, err := fx.fileUC.AssetURL(ctx, file)
	assert.Empty(t, url)
	assert.ErrorIs(t, err, ErrAssetNotFound)
	assert.NotErrorIs(t, err, ErrAssetStorage)

	fx.assets.statErr = errors.New("connection refused")
	_, err = fx.fileUC.AssetURL(ctx, file)
	assert.ErrorIs(t, err, ErrAssetStorage)
}
