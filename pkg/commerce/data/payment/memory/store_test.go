package memory

import (
	"testing"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/payment/tests"
)

func TestPaymentMemoryStore(t *testing.T) {
	testStore := New()
	teardown := func() {
		testStore.(*store).reset()
	}
	tests.RunTests(t, testStore, teardown)
}
