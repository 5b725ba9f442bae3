package rewardsapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"laundryops/internal/adapters/out/rewardsapi"
	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(t *testing.T) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		decimal.NewFromInt(350), order.MethodCard,
	)
	require.NoError(t, err)
	return aggregate
}

func TestClient_AwardPointsForOrder(t *testing.T) {
	aggregate := testOrder(t)
	customerID := aggregate.CustomerID()

	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/loyalty/points", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := rewardsapi.NewClient(server.URL)
	err := client.AwardPointsForOrder(t.Context(), customerID, aggregate)

	require.NoError(t, err)
	assert.Equal(t, customerID.String(), got["customerId"])
	assert.Equal(t, aggregate.ID().String(), got["orderId"])
	assert.Equal(t, "350", got["total"])
}

func TestClient_AwardPointsForOrder_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "ledger unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := rewardsapi.NewClient(server.URL)
	err := client.AwardPointsForOrder(t.Context(), kernel.NewUUID(), testOrder(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_UnclaimedCode(t *testing.T) {
	customerID := kernel.NewUUID()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/referrals/unclaimed", r.URL.Path)
		assert.Equal(t, customerID.String(), r.URL.Query().Get("customerId"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"FRIEND50","minOrderTotal":"100"}`))
	}))
	defer server.Close()

	client := rewardsapi.NewClient(server.URL)
	code, err := client.UnclaimedCode(t.Context(), customerID)

	require.NoError(t, err)
	require.NotNil(t, code)
	assert.Equal(t, "FRIEND50", code.Code)
	assert.True(t, code.MinOrderTotal.Equal(decimal.NewFromInt(100)))
}

func TestClient_UnclaimedCode_NoneHeld(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := rewardsapi.NewClient(server.URL)
	code, err := client.UnclaimedCode(t.Context(), kernel.NewUUID())

	require.NoError(t, err)
	assert.Nil(t, code)
}

func TestClient_ReferralActions(t *testing.T) {
	customerID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		var got map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "FRIEND50", got["code"])
		assert.Equal(t, customerID.String(), got["customerId"])
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := rewardsapi.NewClient(server.URL)

	require.NoError(t, client.GrantReward(t.Context(), "FRIEND50", customerID, orderID))
	require.NoError(t, client.MarkClaimed(t.Context(), "FRIEND50", customerID))
	assert.Equal(t, []string{"/referrals/grant", "/referrals/claim"}, paths)
}
