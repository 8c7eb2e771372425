package metadata

import (
	"encoding/json"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/fhuszti/medias-metadata-go/internal/mock"
	"github.com/fhuszti/medias-metadata-go/internal/model"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newStores(rels ...model.MediaRelation) (*mock.MockRelationRepo, *mock.MockMetadataRepo) {
	relRepo := &mock.MockRelationRepo{Rows: rels}
	mdRepo := &mock.MockMetadataRepo{Rows: map[string]*model.Metadata{}, Relations: relRepo}
	return relRepo, mdRepo
}

func rel(mediaID, path string) model.MediaRelation {
	return model.MediaRelation{MediaID: mediaID, Path: path, Created: fixedNow.Add(-time.Hour)}
}

func cachedAt(mediaID string, updated time.Time) *model.Metadata {
	return &model.Metadata{MediaID: mediaID, Value: json.RawMessage(`{"id":"` + mediaID + `"}`), Created: updated, Updated: updated}
}

func pathsOf(repo *mock.MockRelationRepo, mediaID string) []string {
	var out []string
	for _, r := range repo.Rows {
		if r.MediaID == mediaID {
			out = append(out, r.Path)
		}
	}
	sort.Strings(out)
	return out
}

func mediaOf(repo *mock.MockRelationRepo, path string) []string {
	var out []string
	for _, r := range repo.Rows {
		if r.Path == path {
			out = append(out, r.MediaID)
		}
	}
	sort.Strings(out)
	return out
}

func assertStrings(t *testing.T, label string, got, want []string) {
	t.Helper()
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("%s: expected %v, got %v", label, want, got)
	}
}
