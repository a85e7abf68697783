package vault

import (
	"context"
	"reflect"
	"testing"
)

func TestExport(t *testing.T) {
	ctx := context.Background()

	fake := newFakeVault()
	fake.kv2["top"] = map[string]any{"k": "v"}
	fake.kv2["app/web"] = map[string]any{"session_key": "abc"}
	fake.kv1["svc"] = map[string]any{"api_key": "xyz"}
	client := newTestClient(t, fake, nil)

	t.Run("whole namespace", func(t *testing.T) {
		secrets, err := client.Export(ctx, "/")
		if err != nil {
			t.Fatalf("Export() returned error: %v", err)
		}

		want := map[string]map[string]any{
			"secret/top":     {"k": "v"},
			"secret/app/web": {"session_key": "abc"},
			"legacy/svc":     {"api_key": "xyz"},
		}
		if !reflect.DeepEqual(secrets, want) {
			t.Errorf("Export() = %v, want %v", secrets, want)
		}
	})

	t.Run("subtree", func(t *testing.T) {
		secrets, err := client.Export(ctx, "secret/app")
		if err != nil {
			t.Fatalf("Export() returned error: %v", err)
		}

		want := map[string]map[string]any{
			"secret/app/web": {"session_key": "abc"},
		}
		if !reflect.DeepEqual(secrets, want) {
			t.Errorf("Export() = %v, want %v", secrets, want)
		}
	})
}

func TestImport(t *testing.T) {
	ctx := context.Background()

	fake := newFakeVault()
	client := newTestClient(t, fake, nil)

	count, err := client.Import(ctx, map[string]map[string]any{
		"secret/db/creds": {"username": "admin"},
		"legacy/app":      {"api_key": "xyz"},
	})
	if err != nil {
		t.Fatalf("Import() returned error: %v", err)
	}
	if count != 2 {
		t.Errorf("Import() = %d, want 2", count)
	}

	if data, ok := fake.storedKV2("db/creds"); !ok || !reflect.DeepEqual(data, map[string]any{"username": "admin"}) {
		t.Errorf("kv2 secret after import = %v", data)
	}
	if data, ok := fake.storedKV1("app"); !ok || !reflect.DeepEqual(data, map[string]any{"api_key": "xyz"}) {
		t.Errorf("kv1 secret after import = %v", data)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()

	source := newFakeVault()
	source.kv2["top"] = map[string]any{"k": "v"}
	source.kv2["app/db/creds"] = map[string]any{"username": "admin"}
	source.kv1["svc"] = map[string]any{"api_key": "xyz"}
	sourceClient := newTestClient(t, source, nil)

	exported, err := sourceClient.Export(ctx, "/")
	if err != nil {
		t.Fatalf("Export() returned error: %v", err)
	}

	target := newFakeVault()
	targetClient := newTestClient(t, target, nil)

	count, err := targetClient.Import(ctx, exported)
	if err != nil {
		t.Fatalf("Import() returned error: %v", err)
	}
	if count != 3 {
		t.Errorf("Import() = %d, want 3", count)
	}

	reExported, err := targetClient.Export(ctx, "/")
	if err != nil {
		t.Fatalf("Export() after import returned error: %v", err)
	}
	if !reflect.DeepEqual(reExported, exported) {
		t.Errorf("round trip changed the document: %v != %v", reExported, exported)
	}
}
