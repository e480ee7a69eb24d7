package followups

import "github.com/lucasmedina/viandas-backend/pkg/enums"

// messageTemplates are the canned WhatsApp texts staff copy when working the
// follow-up queue.
var messageTemplates = map[enums.FollowupType]string{
	enums.FollowupTypeReventaPack: "Hola! 🙌\nTe escribo porque muchos clientes están resolviendo la semana con el pack de 10 comidas, que es más práctico y conveniente que pedir suelto.\nSi querés, esta semana lo podemos armar así 💪",
	enums.FollowupTypeRecompra:    "Hola! 👋\nTe aviso que ya estamos tomando pedidos para la próxima semana.\nSi querés repetir el pack, avisame y lo dejamos reservado.",
}

// MessageFor returns the suggested outreach text for a follow-up type.
func MessageFor(followupType enums.FollowupType) string {
	return messageTemplates[followupType]
}
