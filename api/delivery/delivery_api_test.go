package delivery

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focolog/api/apitest"
	"focolog/model/entity"
)

func TestQuickDeliveryAndSignatureUpload(t *testing.T) {
	a := apitest.NewApp(t)
	e := apitest.Serve(a, entity.RoleSupervisor, RegisterDeliveryRoutes)
	ctx := context.Background()

	item, err := a.Repos.Inventory.Create(ctx, &entity.InventoryItem{Name: "Protetor auricular", Type: entity.ItemTypeEPI, Quantity: 10})
	require.NoError(t, err)

	scan := map[string]interface{}{"item_id": item.ID, "item_name": item.Name, "quantity": 1, "size": "U"}
	rec := apitest.Do(e, http.MethodPost, "/api/deliveries/quick", map[string]interface{}{
		"employee_id": 3, "employee_name": "João", "supervisor": "Carlos", "signature": "João",
		"items": []interface{}{scan, scan, scan},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created entity.DeliveryRecord
	apitest.Decode(t, rec, &created)
	require.Len(t, created.Items, 1)
	assert.Equal(t, 1, created.Items[0].Quantity)

	left, err := a.Repos.Inventory.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, left.Quantity)

	rec = apitest.Do(e, http.MethodGet, "/api/deliveries?employee_id=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []entity.DeliveryRecord
	apitest.Decode(t, rec, &list)
	assert.Len(t, list, 1)

	var img bytes.Buffer
	canvas := image.NewNRGBA(image.Rect(0, 0, 60, 20))
	canvas.Set(5, 5, color.Black)
	require.NoError(t, png.Encode(&img, canvas))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("signature", "assinatura.png")
	require.NoError(t, err)
	_, err = fw.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/deliveries/%d/signature", created.ID), &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	out := httptest.NewRecorder()
	e.ServeHTTP(out, req)
	require.Equal(t, http.StatusOK, out.Code, out.Body.String())
	var signed entity.DeliveryRecord
	apitest.Decode(t, out, &signed)
	assert.Contains(t, signed.SignatureImageURL, "/media/signatures/")
}

func TestDeliveryValidation(t *testing.T) {
	a := apitest.NewApp(t)
	e := apitest.Serve(a, entity.RoleSupervisor, RegisterDeliveryRoutes)
	rec := apitest.Do(e, http.MethodPost, "/api/deliveries", map[string]interface{}{"employee_name": "João"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, http.StatusBadRequest, apitest.Do(e, http.MethodGet, "/api/deliveries/holdings", nil).Code)
}
