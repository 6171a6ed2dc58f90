package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductFixture(images ImageStore) (*ProductUsecase, *productRepoMock, *auditRepoMock) {
	uc, products, audits, _ := newProductTxFixture(images)
	return uc, products, audits
}

func newProductTxFixture(images ImageStore) (*ProductUsecase, *productRepoMock, *auditRepoMock, *txManagerMock) {
	products := new(productRepoMock)
	audits := new(auditRepoMock)
	tx := &txManagerMock{repos: &txReposMock{products: products, auditLogs: audits}}
	return NewProductUsecase(products, tx, images, fixedID("p-new"), fixedClock{testNow}), products, audits, tx
}

func TestProductUsecase_ListByPincode(t *testing.T) {
	uc, products, _ := newProductFixture(nil)
	products.On("ListByPincode", mock.Anything, "560001").Return([]model.Product{{ID: "P1"}}, nil)
	products.On("ListAll", mock.Anything).Return([]model.Product{{ID: "P1"}, {ID: "P2"}}, nil)

	got, err := uc.List(context.Background(), " 560001 ")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = uc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestProductUsecase_CreateDefaultsImage(t *testing.T) {
	uc, products, _ := newProductFixture(nil)
	sess := sellerSession("seller-1")
	products.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.ID == "p-new" && p.SellerID == "seller-1" && p.ImageURL == model.PlaceholderImageURL && p.Pincode == "560001"
	})).Return(model.Product{ID: "p-new"}, nil).Once()

	_, err := uc.Create(context.Background(), sess, ProductInput{Name: "Tea", Price: 5, Pincode: " 560001 "})
	require.NoError(t, err)
	products.AssertExpectations(t)
}

func TestProductUsecase_CreateRequiresPincode(t *testing.T) {
	uc, products, _ := newProductFixture(nil)

	_, err := uc.Create(context.Background(), sellerSession("seller-1"), ProductInput{Name: "Tea", Price: 5})
	status, msg := httpStatus(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, MsgPincodeRequired, msg)
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductUsecase_BuyerCannotCreate(t *testing.T) {
	uc, _, _ := newProductFixture(nil)
	buyer := session.NewManager(0).Start("b1", model.RoleBuyer)

	_, err := uc.Create(context.Background(), buyer, ProductInput{Name: "Tea", Pincode: "1"})
	status, _ := httpStatus(t, err)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestProductUsecase_UpdateOnlyOwn(t *testing.T) {
	uc, products, _ := newProductFixture(nil)
	products.On("FindByID", mock.Anything, "P1").Return(model.Product{ID: "P1", SellerID: "seller-1"}, nil)
	products.On("Update", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.Update(context.Background(), sellerSession("seller-2"), "P1", ProductInput{Name: "x", Pincode: "1"})
	status, _ := httpStatus(t, err)
	assert.Equal(t, http.StatusNotFound, status)

	p, err := uc.Update(context.Background(), sellerSession("seller-1"), "P1", ProductInput{Name: "Green Tea", Price: 6, Pincode: "1"})
	require.NoError(t, err)
	assert.Equal(t, "Green Tea", p.Name)
	assert.Equal(t, "seller-1", p.SellerID)
	products.AssertNumberOfCalls(t, "Update", 1)
}

func TestProductUsecase_DeleteWritesAudit(t *testing.T) {
	uc, products, audits := newProductFixture(nil)
	products.On("FindByID", mock.Anything, "P1").Return(model.Product{ID: "P1", Name: "Tea", SellerID: "seller-1"}, nil)
	products.On("Delete", mock.Anything, "P1").Return(nil)
	audits.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionDeleteProduct &&
			l.ResourceType == model.AuditResourceProduct &&
			l.ResourceID == "P1" &&
			strings.Contains(l.BeforeJSON, `"name":"Tea"`)
	})).Return(nil).Once()

	require.NoError(t, uc.Delete(context.Background(), sellerSession("seller-1"), "P1"))
	audits.AssertExpectations(t)
}

func TestProductUsecase_Delete_AuditFailureRollsBack(t *testing.T) {
	uc, products, audits, tx := newProductTxFixture(nil)
	products.On("FindByID", mock.Anything, "P1").Return(model.Product{ID: "P1", SellerID: "seller-1"}, nil)
	products.On("Delete", mock.Anything, "P1").Return(nil)
	audits.On("Create", mock.Anything, mock.Anything).Return(errors.New("audit down"))

	err := uc.Delete(context.Background(), sellerSession("seller-1"), "P1")
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, he.Status)

	// 削除は監査ログと同じTxの中で、Txごと戻る
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 1, tx.rolledBack)
	products.AssertNumberOfCalls(t, "Delete", 1)
}

func TestProductUsecase_UploadImage(t *testing.T) {
	images := new(imageStoreMock)
	uc, _, _ := newProductFixture(images)
	body := strings.NewReader("png-bytes")
	images.On("Upload", mock.Anything, "products/seller-1/p-new.png", "image/png", body).
		Return("https://bucket.s3.amazonaws.com/products/seller-1/p-new.png", nil)

	url, err := uc.UploadImage(context.Background(), sellerSession("seller-1"), "Photo.PNG", "image/png", body)
	require.NoError(t, err)
	assert.Contains(t, url, "p-new.png")

	_, err = uc.UploadImage(context.Background(), sellerSession("seller-1"), "a.txt", "text/plain", body)
	status, _ := httpStatus(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestProductUsecase_UploadImage_NotConfigured(t *testing.T) {
	uc, _, _ := newProductFixture(nil)

	_, err := uc.UploadImage(context.Background(), sellerSession("seller-1"), "a.png", "image/png", strings.NewReader(""))
	status, _ := httpStatus(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestProductUsecase_GetErrors(t *testing.T) {
	uc, products, _ := newProductFixture(nil)
	products.On("FindByID", mock.Anything, "gone").Return(model.Product{}, repo.ErrNotFound)
	products.On("FindByID", mock.Anything, "flaky").Return(model.Product{}, errors.New("timeout"))

	_, err := uc.Get(context.Background(), "gone")
	status, _ := httpStatus(t, err)
	assert.Equal(t, http.StatusNotFound, status)

	_, err = uc.Get(context.Background(), "flaky")
	he, _ := AsHTTPError(err)
	assert.True(t, he.Retryable())
}
