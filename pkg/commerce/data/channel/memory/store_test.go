package memory

import (
	"testing"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/channel/tests"
)

func TestChannelMemoryStore(t *testing.T) {
	testStore := New()
	teardown := func() {
		testStore.(*store).reset()
	}
	tests.RunTests(t, testStore, teardown)
}
