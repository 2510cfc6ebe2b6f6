package metadata

import "intellispec/internal/mapping"

// defaultAliases 随系统下发的别名表，按目标字段路径组织
// 收录各来源系统（EAM、CMMS、ERP 导出）里常见的列名写法
var defaultAliases = mapping.AliasTable{
	"asset_tag": {
		{Value: "Equipment ID", Confidence: 98},
		{Value: "Tag Number", Confidence: 98},
		{Value: "Equipment Number", Confidence: 95},
	},
	"site_code": {
		{Value: "Plant Code", Confidence: 98},
		{Value: "Facility", Confidence: 95},
		{Value: "Location Code", Confidence: 95},
		{Value: "Plant", Confidence: 92},
	},
	"asset_group_code": {
		{Value: "Group Code", Confidence: 95},
		{Value: "Unit_ID", Confidence: 90},
	},
	"serial_no": {
		{Value: "Serial #", Confidence: 98},
		{Value: "S/N", Confidence: 95},
	},
	"manufacturer": {
		{Value: "Make", Confidence: 95},
		{Value: "OEM", Confidence: 92},
		{Value: "Vendor", Confidence: 90},
	},
	"model_no": {
		{Value: "Model Number", Confidence: 98},
		{Value: "Model", Confidence: 95},
	},
	"purchase.date": {
		{Value: "Acquisition Date", Confidence: 95},
		{Value: "Date Purchased", Confidence: 95},
	},
	"purchase.cost": {
		{Value: "Purchase Price", Confidence: 95},
		{Value: "Cost", Confidence: 90},
	},
	"company_code": {
		{Value: "Company ID", Confidence: 95},
		{Value: "Organization", Confidence: 90},
	},
}

// Aliases 系统内置别名表
func Aliases() mapping.AliasTable {
	return defaultAliases
}
