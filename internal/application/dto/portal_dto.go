package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sales-portal-api/internal/domain/entity"
)

// Los nombres de campo JSON replican el contrato histórico del portal
// (user, salesmenData, supData, bsmData, customerSummary, masterDataTotal,
// allUsers, rows, total); los frontends existentes dependen de ellos.

// UserDTO usuario del portal.
type UserDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// SalesmanDTO registro de vendedor con su desempeño.
type SalesmanDTO struct {
	SalesmanCode string          `json:"salesmanCode"`
	Name         string          `json:"name"`
	AssignedSup  string          `json:"assignedSup"`
	RouteCode    string          `json:"routeCode"`
	Branch       string          `json:"branch"`
	TargetCY     decimal.Decimal `json:"targetCY"`
	ActualCY     decimal.Decimal `json:"actCY"`
}

// SupervisorDTO registro de supervisor.
type SupervisorDTO struct {
	SupervisorCode string `json:"supervisorCode"`
	Name           string `json:"name"`
	AssignedBSM    string `json:"assignedBSM"`
	Branch         string `json:"branch"`
}

// BSMDTO registro del BSM.
type BSMDTO struct {
	BSMCode string `json:"bsmCode"`
	Name    string `json:"name"`
	Region  string `json:"region"`
}

// CustomerSummaryDTO agregado por cliente. Los campos descriptivos salen de
// una fila representativa arbitraria del grupo; no dependa de cuál.
type CustomerSummaryDTO struct {
	CustomerCode string          `json:"customerCode"`
	Customer     string          `json:"customer"`
	SalesmanCode string          `json:"salesmanCode"`
	RouteCode    string          `json:"routeCode"`
	Sector       string          `json:"sector"`
	Class        string          `json:"class"`
	TotalL3S     decimal.Decimal `json:"totalL3S"`
	TotalL6S     decimal.Decimal `json:"totalL6S"`
	TotalCY      decimal.Decimal `json:"totalCY"`
	TotalLY      decimal.Decimal `json:"totalLY"`
	TotalAchCY   decimal.Decimal `json:"totalACHCY"`
	TotalAchLY   decimal.Decimal `json:"totalACHLY"`
	RowCount     int             `json:"rowCount"`
	VariancePct  decimal.Decimal `json:"variancePct"`
}

// MasterRowDTO una fila de hechos del detalle de cliente.
type MasterRowDTO struct {
	SalesmanCode   string          `json:"salesmanCode"`
	SupervisorCode string          `json:"supervisorCode"`
	CustomerCode   string          `json:"customerCode"`
	Customer       string          `json:"customer"`
	RouteCode      string          `json:"routeCode"`
	Sector         string          `json:"sector"`
	Class          string          `json:"class"`
	Region         string          `json:"region"`
	Branch         string          `json:"branch"`
	Brand          string          `json:"brand"`
	ProductGroup   string          `json:"productGroup"`
	SubBrand       string          `json:"subBrand"`
	Product        string          `json:"product"`
	Date           string          `json:"date"`
	L3S            decimal.Decimal `json:"l3s"`
	L6S            decimal.Decimal `json:"l6s"`
	AchCY          decimal.Decimal `json:"achCY"`
	AchLY          decimal.Decimal `json:"achLY"`
	ActualCY       decimal.Decimal `json:"actCY"`
	ActualLY       decimal.Decimal `json:"actLY"`
}

// LoginResponse respuesta del action=login. salesmenData, customerSummary y
// masterDataTotal se emiten siempre, aun con alcance vacío (arreglos vacíos
// y total en cero): los frontends los iteran sin chequear presencia. Solo
// supData, bsmData y allUsers son condicionales al rol.
type LoginResponse struct {
	User            *UserDTO             `json:"user"`
	SalesmenData    []SalesmanDTO        `json:"salesmenData"`
	SupData         []SupervisorDTO      `json:"supData,omitempty"`
	BSMData         []BSMDTO             `json:"bsmData,omitempty"`
	CustomerSummary []CustomerSummaryDTO `json:"customerSummary"`
	MasterDataTotal int                  `json:"masterDataTotal"`
	AllUsers        []UserDTO            `json:"allUsers,omitempty"`
}

// CustomerDetailResponse respuesta del action=customerDetail.
type CustomerDetailResponse struct {
	Rows  []MasterRowDTO `json:"rows"`
	Total int            `json:"total"`
}

// UsersResponse respuesta del action=getUsers.
type UsersResponse struct {
	Users []UserDTO `json:"users"`
}

// ClearCacheResponse respuesta del action=clearCache.
type ClearCacheResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HelpResponse respuesta para acciones no reconocidas.
type HelpResponse struct {
	Help   string `json:"help"`
	Params string `json:"params"`
}

// PortalError cuerpo de error del portal.
type PortalError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// ── Conversión entidad → DTO ──────────────────────────────────────────────────

// FromUser convierte la entidad User.
func FromUser(u entity.User) UserDTO {
	return UserDTO{Code: u.Code, Name: u.Name, Role: u.Role}
}

// FromUsers convierte un slice de usuarios.
func FromUsers(users []entity.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}

// FromSalesmen convierte registros de vendedor.
func FromSalesmen(salesmen []entity.Salesman) []SalesmanDTO {
	out := make([]SalesmanDTO, 0, len(salesmen))
	for _, s := range salesmen {
		out = append(out, SalesmanDTO{
			SalesmanCode: s.Code,
			Name:         s.Name,
			AssignedSup:  s.AssignedTo.Code,
			RouteCode:    s.RouteCode,
			Branch:       s.Branch,
			TargetCY:     s.TargetCY,
			ActualCY:     s.ActualCY,
		})
	}
	return out
}

// FromSupervisors convierte registros de supervisor.
func FromSupervisors(sups []entity.Supervisor) []SupervisorDTO {
	out := make([]SupervisorDTO, 0, len(sups))
	for _, s := range sups {
		out = append(out, SupervisorDTO{
			SupervisorCode: s.Code,
			Name:           s.Name,
			AssignedBSM:    s.AssignedBSM,
			Branch:         s.Branch,
		})
	}
	return out
}

// FromBSMs convierte registros de BSM.
func FromBSMs(bsms []entity.BSM) []BSMDTO {
	out := make([]BSMDTO, 0, len(bsms))
	for _, b := range bsms {
		out = append(out, BSMDTO{BSMCode: b.Code, Name: b.Name, Region: b.Region})
	}
	return out
}

// FromSummaries convierte resúmenes por cliente.
func FromSummaries(summaries []entity.CustomerSummary) []CustomerSummaryDTO {
	out := make([]CustomerSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, CustomerSummaryDTO{
			CustomerCode: s.CustomerCode,
			Customer:     s.Customer,
			SalesmanCode: s.SalesmanCode,
			RouteCode:    s.RouteCode,
			Sector:       s.Sector,
			Class:        s.Class,
			TotalL3S:     s.TotalL3S,
			TotalL6S:     s.TotalL6S,
			TotalCY:      s.TotalCY,
			TotalLY:      s.TotalLY,
			TotalAchCY:   s.TotalAchCY,
			TotalAchLY:   s.TotalAchLY,
			RowCount:     s.RowCount,
			VariancePct:  s.VariancePct,
		})
	}
	return out
}

// FromMasterRows convierte filas de hechos; la fecha se serializa como
// yyyy-MM-dd (vacía si la fila no trae fecha).
func FromMasterRows(rows []entity.MasterRow) []MasterRowDTO {
	out := make([]MasterRowDTO, 0, len(rows))
	for _, m := range rows {
		date := ""
		if !m.Date.IsZero() {
			date = m.Date.Format("2006-01-02")
		}
		out = append(out, MasterRowDTO{
			SalesmanCode:   m.SalesmanCode,
			SupervisorCode: m.SupervisorCode,
			CustomerCode:   m.CustomerCode,
			Customer:       m.CustomerName,
			RouteCode:      m.RouteCode,
			Sector:         m.Sector,
			Class:          m.Class,
			Region:         m.Region,
			Branch:         m.Branch,
			Brand:          m.Brand,
			ProductGroup:   m.ProductGroup,
			SubBrand:       m.SubBrand,
			Product:        m.Product,
			Date:           date,
			L3S:            m.L3S,
			L6S:            m.L6S,
			AchCY:          m.AchCY,
			AchLY:          m.AchLY,
			ActualCY:       m.ActualCY,
			ActualLY:       m.ActualLY,
		})
	}
	return out
}
