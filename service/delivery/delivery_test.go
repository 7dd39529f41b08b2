package delivery

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"focolog/config"
	"focolog/core/rowstore/rowstoretest"
	"focolog/model/entity"
	"focolog/model/repository"
	"focolog/service"
	"focolog/service/inventory"
)

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *Service
	inv      *inventory.Service
	repos    *repository.Repositories
	mediaDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := repository.New(rowstoretest.NewLocalStore(t), config.BaserowConfig{})
	inv := inventory.NewService(repos, zap.NewNop(), inventory.WithClock(func() time.Time { return fixedNow }))
	media := t.TempDir()
	return &fixture{
		svc:      NewService(repos, inv, NewSignatureStore(media, "/media"), zap.NewNop()),
		inv:      inv,
		repos:    repos,
		mediaDir: media,
	}
}

func (f *fixture) item(t *testing.T, name string, qty int, ca *entity.Date) *entity.InventoryItem {
	t.Helper()
	item, err := f.inv.Create(context.Background(), inventory.ItemInput{
		Name: name, Type: entity.ItemTypeEPI, Quantity: qty, CANumber: "CA-1", CAExpiryDate: ca,
	})
	require.NoError(t, err)
	return item
}

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.Black)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDeliver_Validation(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Deliver(context.Background(), Input{EmployeeName: "Ana", Supervisor: "Carlos"})
	assert.True(t, service.IsValidation(err))
}

func TestQuickDeliver_CollapsesScans(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	helmet := f.item(t, "Capacete", 5, nil)

	rec, err := f.svc.QuickDeliver(ctx, Input{
		EmployeeID:   7,
		EmployeeName: "Maria Silva",
		Supervisor:   "Carlos",
		Signature:    "Maria Silva",
		Items: []entity.RequestItem{
			{ItemID: helmet.ID, ItemName: "Capacete", Size: "M"},
			{ItemID: helmet.ID, ItemName: "Capacete", Size: "M"},
		},
	})
	require.NoError(t, err)
	require.Len(t, rec.Items, 1)
	assert.Equal(t, 1, rec.Items[0].Quantity)
	assert.Equal(t, "2024-06-01", rec.DeliveryDate.String())

	got, err := f.inv.Get(ctx, helmet.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Quantity)
}

func TestDeliver_PicksRequestedSize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	var sized []*entity.InventoryItem
	for _, size := range []string{"P", "G"} {
		item, err := f.inv.Create(ctx, inventory.ItemInput{Name: "Luva", Type: entity.ItemTypeEPI, Size: size, Quantity: 5})
		require.NoError(t, err)
		sized = append(sized, item)
	}

	rec, err := f.svc.Deliver(ctx, Input{
		EmployeeName: "Ana", Supervisor: "Carlos", Signature: "Ana",
		Items: []entity.RequestItem{{ItemName: "Luva", Size: "G", Quantity: 2}},
	})
	require.NoError(t, err)
	require.Len(t, rec.Items, 1)
	assert.Equal(t, sized[1].ID, rec.Items[0].ItemID)
	assert.Equal(t, "G", rec.Items[0].Size)

	p, err := f.inv.Get(ctx, sized[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)
	g, err := f.inv.Get(ctx, sized[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Quantity)

	_, err = f.svc.QuickDeliver(ctx, Input{
		EmployeeName: "Ana", Supervisor: "Carlos", Signature: "Ana",
		Items: []entity.RequestItem{{ItemName: "Luva"}},
	})
	assert.True(t, service.IsValidation(err))
}

func TestDeliver_SignatureImage(t *testing.T) {
	f := newFixture(t)
	item := f.item(t, "Luvas", 10, nil)

	rec, err := f.svc.Deliver(context.Background(), Input{
		EmployeeName: "João",
		Supervisor:   "Carlos",
		Signature:    pngDataURL(t, 1200, 300),
		Items:        []entity.RequestItem{{ItemID: item.ID, Quantity: 2, Size: "M"}},
	})
	require.NoError(t, err)
	assert.Equal(t, signedImage, rec.Signature)
	require.True(t, strings.HasPrefix(rec.SignatureImageURL, "/media/signatures/"))
	assert.True(t, strings.HasSuffix(rec.SignatureImageURL, ".webp"))

	_, err = os.Stat(filepath.Join(f.mediaDir, "signatures", filepath.Base(rec.SignatureImageURL)))
	assert.NoError(t, err)
}

func TestUploadSignature_RejectsGarbage(t *testing.T) {
	f := newFixture(t)
	item := f.item(t, "Luvas", 10, nil)
	rec, err := f.svc.Deliver(context.Background(), Input{
		EmployeeName: "João", Supervisor: "Carlos", Signature: "João",
		Items: []entity.RequestItem{{ItemID: item.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.svc.UploadSignature(context.Background(), rec.ID, strings.NewReader("not an image"))
	assert.True(t, service.IsValidation(err))
}

func TestDecodeDataURL(t *testing.T) {
	_, ok := DecodeDataURL("Maria")
	assert.False(t, ok)
	_, ok = DecodeDataURL("data:image/png;base64,@@@")
	assert.False(t, ok)
	_, ok = DecodeDataURL(pngDataURL(t, 2, 2))
	assert.True(t, ok)
}

func TestHoldings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	soon := entity.MustDate("2024-06-10")
	gone := entity.MustDate("2024-05-01")
	a := f.item(t, "Protetor auricular", 10, &soon)
	b := f.item(t, "Máscara", 10, &gone)
	c := f.item(t, "Bota", 10, nil)

	_, err := f.svc.Deliver(ctx, Input{
		EmployeeID: 3, EmployeeName: "Ana", Supervisor: "Carlos", Signature: "Ana",
		Items: []entity.RequestItem{{ItemID: a.ID, Quantity: 1}, {ItemID: b.ID, Quantity: 1}, {ItemID: c.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = f.svc.Deliver(ctx, Input{
		EmployeeID: 4, EmployeeName: "Bruno", Supervisor: "Carlos", Signature: "Bruno",
		Items: []entity.RequestItem{{ItemID: c.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	hs, err := f.svc.Holdings(ctx, 3)
	require.NoError(t, err)
	require.Len(t, hs, 3)
	status := map[string]string{}
	for _, h := range hs {
		status[h.Name] = h.Status
	}
	assert.Equal(t, HoldingExpiring, status["Protetor auricular"])
	assert.Equal(t, HoldingExpired, status["Máscara"])
	assert.Equal(t, HoldingActive, status["Bota"])

	all, err := f.svc.List(ctx, 0, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	byName, err := f.svc.List(ctx, 0, "brun")
	require.NoError(t, err)
	assert.Len(t, byName, 1)
}
