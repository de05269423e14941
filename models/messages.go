package models

// User-facing error messages returned by the HTTP surface.
const (
	MsgEssayTooShort    = "Redação muito curta. Mínimo de 50 caracteres."
	MsgEssayTooLong     = "Texto muito longo para análise."
	MsgMethodNotAllowed = "Método não permitido"

	MsgAuthError       = "Erro de autenticação"
	MsgAuthErrorDetail = "Problema com a configuração da API"

	MsgRateLimited       = "Limite atingido"
	MsgRateLimitedDetail = "Tente novamente em alguns minutos"

	MsgInternalError       = "Erro interno do servidor"
	MsgInternalErrorDetail = "Tente novamente em alguns instantes"
)
