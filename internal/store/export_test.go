package store

import (
	"context"
	"testing"

	"github.com/rcliao/fitfizz/internal/advisor"
)

func TestExportImport_RoundTripIsIdempotent(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)

	src.RecordAssessment(ctx, AssessmentParams{Session: "e", Assessment: assess(70, 1.75)})
	src.RecordAssessment(ctx, AssessmentParams{Session: "e", Assessment: assess(88, 1.75)})
	seedTurns(t, src, "e", advisor.Overweight, "rice", "water")

	exports, err := src.ExportAll(ctx, "e")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(exports) != 1 || len(exports[0].Measurements) != 2 || len(exports[0].Turns) != 2 {
		t.Fatalf("unexpected export: %+v", exports)
	}

	dst := newTestStore(t)
	n, err := dst.Import(ctx, exports)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 4 {
		t.Errorf("expected 4 rows imported, got %d", n)
	}

	n, err = dst.Import(ctx, exports)
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if n != 0 {
		t.Errorf("expected re-import to skip everything, got %d", n)
	}

	sess, err := dst.GetSession(ctx, "e")
	if err != nil {
		t.Fatal(err)
	}
	if sess.Category != advisor.Overweight {
		t.Errorf("expected Overweight, got %v", sess.Category)
	}
	if sess.Measurements != 2 || sess.Turns != 2 {
		t.Errorf("expected 2/2, got %d/%d", sess.Measurements, sess.Turns)
	}
}

func TestExportAll_MissingSession(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.ExportAll(context.Background(), "missing"); err == nil {
		t.Fatal("expected error")
	}
}
