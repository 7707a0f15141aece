package model

// UserRole is the capability class of a user. Persisted as a fixed
// lowercase token; changing a token breaks existing rows.
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleSolicitante UserRole = "solicitante"
	RoleAprovador   UserRole = "aprovador"
	RoleRecebimento UserRole = "recebimento"
)

var validRoles = map[UserRole]struct{}{
	RoleAdmin:       {},
	RoleSolicitante: {},
	RoleAprovador:   {},
	RoleRecebimento: {},
}

// ParseUserRole converts a stored token into a UserRole.
func ParseUserRole(s string) (UserRole, bool) {
	r := UserRole(s)
	_, ok := validRoles[r]
	return r, ok
}

// AcquisitionType classifies an acquisition as a service or a supply.
type AcquisitionType string

const (
	TypeServico AcquisitionType = "servico"
	TypeInsumo  AcquisitionType = "insumo"
)

var validTypes = map[AcquisitionType]struct{}{
	TypeServico: {},
	TypeInsumo:  {},
}

// ParseAcquisitionType converts a stored token into an AcquisitionType.
func ParseAcquisitionType(s string) (AcquisitionType, bool) {
	t := AcquisitionType(s)
	_, ok := validTypes[t]
	return t, ok
}

// AcquisitionStatus is the stage of an acquisition's lifecycle.
// The main sequence runs em_analise -> aprovado -> em_cotacao ->
// pedido_realizado -> recebido -> fechado; the budgeting sub-states
// aguardando_orcamento and orcamento_recebido can be entered from any
// in-progress stage.
type AcquisitionStatus string

const (
	StatusEmAnalise           AcquisitionStatus = "em_analise"
	StatusAprovado            AcquisitionStatus = "aprovado"
	StatusEmCotacao           AcquisitionStatus = "em_cotacao"
	StatusPedidoRealizado     AcquisitionStatus = "pedido_realizado"
	StatusRecebido            AcquisitionStatus = "recebido"
	StatusFechado             AcquisitionStatus = "fechado"
	StatusAguardandoOrcamento AcquisitionStatus = "aguardando_orcamento"
	StatusOrcamentoRecebido   AcquisitionStatus = "orcamento_recebido"
)

var validStatuses = map[AcquisitionStatus]struct{}{
	StatusEmAnalise:           {},
	StatusAprovado:            {},
	StatusEmCotacao:           {},
	StatusPedidoRealizado:     {},
	StatusRecebido:            {},
	StatusFechado:             {},
	StatusAguardandoOrcamento: {},
	StatusOrcamentoRecebido:   {},
}

// ParseAcquisitionStatus converts a stored token into an AcquisitionStatus.
func ParseAcquisitionStatus(s string) (AcquisitionStatus, bool) {
	st := AcquisitionStatus(s)
	_, ok := validStatuses[st]
	return st, ok
}

// PaymentMethod enumerates how a closed acquisition was paid.
type PaymentMethod string

const (
	PaymentDinheiro       PaymentMethod = "dinheiro"
	PaymentCartaoCredito  PaymentMethod = "cartao_credito"
	PaymentCartaoDebito   PaymentMethod = "cartao_debito"
	PaymentTransferencia  PaymentMethod = "transferencia"
	PaymentBoleto         PaymentMethod = "boleto"
	PaymentPix            PaymentMethod = "pix"
)

var validPaymentMethods = map[PaymentMethod]struct{}{
	PaymentDinheiro:      {},
	PaymentCartaoCredito: {},
	PaymentCartaoDebito:  {},
	PaymentTransferencia: {},
	PaymentBoleto:        {},
	PaymentPix:           {},
}

// ParsePaymentMethod converts a stored token into a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	p := PaymentMethod(s)
	_, ok := validPaymentMethods[p]
	return p, ok
}

// BudgetSource enumerates where the money for an acquisition comes from.
type BudgetSource string

const (
	BudgetVerbaEstadual  BudgetSource = "verba_estadual"
	BudgetRecursoProprio BudgetSource = "recurso_proprio"
	BudgetFederal        BudgetSource = "federal"
	BudgetOutros         BudgetSource = "outros"
)

var validBudgetSources = map[BudgetSource]struct{}{
	BudgetVerbaEstadual:  {},
	BudgetRecursoProprio: {},
	BudgetFederal:        {},
	BudgetOutros:         {},
}

// ParseBudgetSource converts a stored token into a BudgetSource.
func ParseBudgetSource(s string) (BudgetSource, bool) {
	b := BudgetSource(s)
	_, ok := validBudgetSources[b]
	return b, ok
}
