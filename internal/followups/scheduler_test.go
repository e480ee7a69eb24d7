package followups

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lucasmedina/viandas-backend/pkg/enums"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		orderType enums.OrderType
		wantType  enums.FollowupType
		wantDays  int
		wantOK    bool
	}{
		{enums.OrderTypeSingle, enums.FollowupTypeReventaPack, 3, true},
		{enums.OrderTypePack5, enums.FollowupTypeRecompra, 6, true},
		{enums.OrderTypePack10, enums.FollowupTypeRecompra, 6, true},
		{enums.OrderTypeOther, "", 0, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.orderType), func(t *testing.T) {
			gotType, gotDays, ok := Decide(tc.orderType)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantType, gotType)
			assert.Equal(t, tc.wantDays, gotDays)
		})
	}
}

func TestDueDate_DropsTimeOfDay(t *testing.T) {
	now := time.Date(2025, 8, 29, 23, 45, 12, 0, time.UTC)
	due := DueDate(now, 3)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), due)
}

func TestMessageFor_KnownTypes(t *testing.T) {
	// the exact scripts staff copy into WhatsApp, word for word
	assert.Equal(t,
		"Hola! 🙌\nTe escribo porque muchos clientes están resolviendo la semana con el pack de 10 comidas, que es más práctico y conveniente que pedir suelto.\nSi querés, esta semana lo podemos armar así 💪",
		MessageFor(enums.FollowupTypeReventaPack))
	assert.Equal(t,
		"Hola! 👋\nTe aviso que ya estamos tomando pedidos para la próxima semana.\nSi querés repetir el pack, avisame y lo dejamos reservado.",
		MessageFor(enums.FollowupTypeRecompra))
	assert.Empty(t, MessageFor(enums.FollowupType("nope")))
}
