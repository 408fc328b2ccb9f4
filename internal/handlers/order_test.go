// internal/handlers/order_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/AndrewLicona/ShopyLink-sub001/internal/services"
)

// OrderHandlerTestSuite exercises the request validation layer. None of these
// requests reach the service, so no database is involved.
type OrderHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *OrderHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	orderHandler := NewOrderHandler(services.NewOrderService(nil))
	storefrontHandler := NewStorefrontHandler(services.NewStorefrontService(nil))

	suite.router.POST("/orders", orderHandler.CreateOrder)
	suite.router.GET("/storefront/:slug/products/:productId", storefrontHandler.GetProduct)
}

func (suite *OrderHandlerTestSuite) postOrder(body interface{}) *httptest.ResponseRecorder {
	jsonData, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", "/orders", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *OrderHandlerTestSuite) TestCreateOrderRejectsMalformedJSON() {
	req, _ := http.NewRequest("POST", "/orders", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *OrderHandlerTestSuite) TestCreateOrderRejectsEmptyCart() {
	w := suite.postOrder(map[string]interface{}{
		"store_id":      "2a1e0c70-1111-4a5b-9cde-0123456789ab",
		"customer_name": "Ana",
		"items":         []interface{}{},
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), response["success"].(bool))
}

func (suite *OrderHandlerTestSuite) TestCreateOrderRejectsMissingCustomerName() {
	w := suite.postOrder(map[string]interface{}{
		"store_id": "2a1e0c70-1111-4a5b-9cde-0123456789ab",
		"items": []interface{}{
			map[string]interface{}{
				"product_id": "3b2f1d81-2222-4a5b-9cde-0123456789ab",
				"quantity":   1,
			},
		},
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *OrderHandlerTestSuite) TestCreateOrderRejectsZeroQuantity() {
	w := suite.postOrder(map[string]interface{}{
		"store_id":      "2a1e0c70-1111-4a5b-9cde-0123456789ab",
		"customer_name": "Ana",
		"items": []interface{}{
			map[string]interface{}{
				"product_id": "3b2f1d81-2222-4a5b-9cde-0123456789ab",
				"quantity":   0,
			},
		},
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *OrderHandlerTestSuite) TestStorefrontProductRejectsBadID() {
	req, _ := http.NewRequest("GET", "/storefront/cafe-rio/products/not-a-uuid", nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}
