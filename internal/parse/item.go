package parse

import (
	"github.com/monitoring-agents/zbxingest/internal/ir"
	"github.com/monitoring-agents/zbxingest/internal/itemid"
	"github.com/monitoring-agents/zbxingest/internal/jsonreader"
)

type fieldSpec struct {
	name string
	id   itemid.ItemId
}

// Item parses the index-th element of the current array (item.get
// "result") into an IR group matching the item schema (spec §6.2),
// including the derived applicationid taken from the first element of
// the nested "applications" array. Fields are read in schema order.
func Item(r *jsonreader.Reader, index int) (*ir.Group, error) {
	if err := r.EnterElement(index); err != nil {
		return nil, err
	}
	defer r.LeaveElement()

	g := ir.NewGroup()

	if _, err := pushUint64(r, g, "itemid", itemid.ZBX_ITEMS_ITEMID); err != nil {
		return nil, err
	}
	if err := pushInt(r, g, "type", itemid.ZBX_ITEMS_TYPE); err != nil {
		return nil, err
	}
	for _, f := range []fieldSpec{
		{"snmp_community", itemid.ZBX_ITEMS_SNMP_COMMUNITY},
		{"snmp_oid", itemid.ZBX_ITEMS_SNMP_OID},
	} {
		if err := pushString(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}
	if _, err := pushUint64(r, g, "hostid", itemid.ZBX_ITEMS_HOSTID); err != nil {
		return nil, err
	}
	for _, f := range []fieldSpec{
		{"name", itemid.ZBX_ITEMS_NAME},
		{"key_", itemid.ZBX_ITEMS_KEY_},
	} {
		if err := pushString(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}
	for _, f := range []fieldSpec{
		{"delay", itemid.ZBX_ITEMS_DELAY},
		{"history", itemid.ZBX_ITEMS_HISTORY},
		{"trends", itemid.ZBX_ITEMS_TRENDS},
	} {
		if err := pushInt(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}
	if err := pushString(r, g, "lastvalue", itemid.ZBX_ITEMS_LASTVALUE); err != nil {
		return nil, err
	}
	if err := pushInt(r, g, "lastclock", itemid.ZBX_ITEMS_LASTCLOCK); err != nil {
		return nil, err
	}
	if err := pushString(r, g, "prevvalue", itemid.ZBX_ITEMS_PREVVALUE); err != nil {
		return nil, err
	}
	for _, f := range []fieldSpec{
		{"status", itemid.ZBX_ITEMS_STATUS},
		{"value_type", itemid.ZBX_ITEMS_VALUE_TYPE},
	} {
		if err := pushInt(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}
	for _, f := range []fieldSpec{
		{"trapper_hosts", itemid.ZBX_ITEMS_TRAPPER_HOSTS},
		{"units", itemid.ZBX_ITEMS_UNITS},
	} {
		if err := pushString(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}
	for _, f := range []fieldSpec{
		{"multiplier", itemid.ZBX_ITEMS_MULTIPLIER},
		{"delta", itemid.ZBX_ITEMS_DELTA},
	} {
		if err := pushInt(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}
	if err := pushString(r, g, "prevorgvalue", itemid.ZBX_ITEMS_PREVORGVALUE); err != nil {
		return nil, err
	}
	if err := pushString(r, g, "snmpv3_securityname", itemid.ZBX_ITEMS_SNMPV3_SECURITYNAME); err != nil {
		return nil, err
	}
	if err := pushInt(r, g, "snmpv3_securitylevel", itemid.ZBX_ITEMS_SNMPV3_SECURITYLEVEL); err != nil {
		return nil, err
	}
	for _, f := range []fieldSpec{
		{"snmpv3_authpassphrase", itemid.ZBX_ITEMS_SNMPV3_AUTHPASSPHRASE},
		{"snmpv3_privpassphrase", itemid.ZBX_ITEMS_SNMPV3_PRIVPASSPHRASE},
		{"formula", itemid.ZBX_ITEMS_FORMULA},
		{"error", itemid.ZBX_ITEMS_ERROR},
	} {
		if err := pushString(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}
	if _, err := pushUint64(r, g, "lastlogsize", itemid.ZBX_ITEMS_LASTLOGSIZE); err != nil {
		return nil, err
	}
	if err := pushString(r, g, "logtimefmt", itemid.ZBX_ITEMS_LOGTIMEFMT); err != nil {
		return nil, err
	}
	for _, f := range []fieldSpec{
		{"templateid", itemid.ZBX_ITEMS_TEMPLATEID},
		{"valuemapid", itemid.ZBX_ITEMS_VALUEMAPID},
	} {
		if _, err := pushUint64(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}
	for _, f := range []fieldSpec{
		{"delay_flex", itemid.ZBX_ITEMS_DELAY_FLEX},
		{"params", itemid.ZBX_ITEMS_PARAMS},
		{"ipmi_sensor", itemid.ZBX_ITEMS_IPMI_SENSOR},
	} {
		if err := pushString(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}
	for _, f := range []fieldSpec{
		{"data_type", itemid.ZBX_ITEMS_DATA_TYPE},
		{"authtype", itemid.ZBX_ITEMS_AUTHTYPE},
	} {
		if err := pushInt(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}
	for _, f := range []fieldSpec{
		{"username", itemid.ZBX_ITEMS_USERNAME},
		{"password", itemid.ZBX_ITEMS_PASSWORD},
		{"publickey", itemid.ZBX_ITEMS_PUBLICKEY},
		{"privatekey", itemid.ZBX_ITEMS_PRIVATEKEY},
	} {
		if err := pushString(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}
	for _, f := range []fieldSpec{
		{"mtime", itemid.ZBX_ITEMS_MTIME},
		{"lastns", itemid.ZBX_ITEMS_LASTNS},
		{"flags", itemid.ZBX_ITEMS_FLAGS},
	} {
		if err := pushInt(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}
	if err := pushString(r, g, "filter", itemid.ZBX_ITEMS_FILTER); err != nil {
		return nil, err
	}
	if _, err := pushUint64(r, g, "interfaceid", itemid.ZBX_ITEMS_INTERFACEID); err != nil {
		return nil, err
	}
	for _, f := range []fieldSpec{
		{"port", itemid.ZBX_ITEMS_PORT},
		{"description", itemid.ZBX_ITEMS_DESCRIPTION},
	} {
		if err := pushString(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}
	if err := pushInt(r, g, "inventory_link", itemid.ZBX_ITEMS_INVENTORY_LINK); err != nil {
		return nil, err
	}
	if err := pushString(r, g, "lifetime", itemid.ZBX_ITEMS_LIFETIME); err != nil {
		return nil, err
	}

	appID, appIDNull, err := deriveFirstRef(r, "applications", "applicationid")
	if err != nil {
		return nil, err
	}
	if appIDNull {
		g.AddNull(itemid.ZBX_ITEMS_APPLICATIONID, ir.CellUint64)
	} else {
		g.AddUint64(itemid.ZBX_ITEMS_APPLICATIONID, appID)
	}

	return g, nil
}
