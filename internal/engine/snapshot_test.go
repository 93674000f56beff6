package engine

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/samdwyer/deepfall/internal/config"
	"github.com/samdwyer/deepfall/internal/gamedata"
)

func exportedRun(t *testing.T, seed int64) (*CoreState, []byte) {
	t.Helper()
	ctx := context.Background()
	s, err := NewRun(ctx, config.Default(), gamedata.MustLoadEnemyRegistry(), gamedata.MustLoadItemRegistry(), seed)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	for _, a := range []Action{Move(DirEast), Wait(), Move(DirSouth)} {
		if _, err := s.AdvanceTurn(ctx, a); err != nil {
			t.Fatalf("AdvanceTurn: %v", err)
		}
	}
	blob, err := s.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	return s, blob
}

func TestSnapshotRoundTrip(t *testing.T) {
	s, blob := exportedRun(t, 42)

	restored, err := Import(blob, config.Default(), gamedata.MustLoadEnemyRegistry(), gamedata.MustLoadItemRegistry())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if restored.RunID != s.RunID || restored.Turn != s.Turn || restored.FloorNum != s.FloorNum {
		t.Fatalf("restored header %s/%d/%d differs from %s/%d/%d",
			restored.RunID, restored.Turn, restored.FloorNum, s.RunID, s.Turn, s.FloorNum)
	}
	if restored.Player.Pos != s.Player.Pos || restored.Player.HP != s.Player.HP {
		t.Fatal("restored player differs")
	}
	if !restored.Floor.Grid.Equal(s.Floor.Grid) {
		t.Fatal("restored grid differs")
	}

	// Structural losslessness: exporting the restored state reproduces the
	// original bytes.
	again, err := restored.Export()
	if err != nil {
		t.Fatalf("re-export: %v", err)
	}
	if !bytes.Equal(blob, again) {
		t.Fatal("round trip is not byte-stable")
	}
}

func TestSnapshotDetectsFlippedByte(t *testing.T) {
	_, blob := exportedRun(t, 7)

	corrupted := bytes.Replace(blob, []byte(`"hp":`), []byte(`"hq":`), 1)
	if bytes.Equal(corrupted, blob) {
		t.Fatal("test setup: nothing corrupted")
	}
	_, err := Import(corrupted, config.Default(), gamedata.MustLoadEnemyRegistry(), gamedata.MustLoadItemRegistry())
	if !errors.Is(err, ErrCorruptState) {
		t.Fatalf("Import of corrupted blob = %v, want ErrCorruptState", err)
	}
}

func TestSnapshotRejectsWrongVersion(t *testing.T) {
	_, blob := exportedRun(t, 7)

	tampered := bytes.Replace(blob, []byte(`"version":1`), []byte(`"version":9`), 1)
	if bytes.Equal(tampered, blob) {
		t.Fatal("test setup: version field not found")
	}
	_, err := Import(tampered, config.Default(), gamedata.MustLoadEnemyRegistry(), gamedata.MustLoadItemRegistry())
	if !errors.Is(err, ErrCorruptState) {
		t.Fatalf("Import with wrong version = %v, want ErrCorruptState", err)
	}
}

func TestSnapshotRejectsGarbage(t *testing.T) {
	for _, blob := range [][]byte{nil, []byte("{}"), []byte("not json at all")} {
		_, err := Import(blob, config.Default(), gamedata.MustLoadEnemyRegistry(), gamedata.MustLoadItemRegistry())
		if !errors.Is(err, ErrCorruptState) {
			t.Fatalf("Import(%q) = %v, want ErrCorruptState", blob, err)
		}
	}
}
