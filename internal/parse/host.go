package parse

import (
	"github.com/monitoring-agents/zbxingest/internal/ir"
	"github.com/monitoring-agents/zbxingest/internal/itemid"
	"github.com/monitoring-agents/zbxingest/internal/jsonreader"
)

var hostUint64Fields = []fieldSpec{
	{"hostid", itemid.ZBX_HOSTS_HOSTID},
	{"proxy_hostid", itemid.ZBX_HOSTS_PROXY_HOSTID},
	{"maintenanceid", itemid.ZBX_HOSTS_MAINTENANCEID},
}

var hostIntFields = []fieldSpec{
	{"status", itemid.ZBX_HOSTS_STATUS},
	{"disable_until", itemid.ZBX_HOSTS_DISABLE_UNTIL},
	{"available", itemid.ZBX_HOSTS_AVAILABLE},
	{"errors_from", itemid.ZBX_HOSTS_ERRORS_FROM},
	{"lastaccess", itemid.ZBX_HOSTS_LASTACCESS},
	{"ipmi_authtype", itemid.ZBX_HOSTS_IPMI_AUTHTYPE},
	{"ipmi_privilege", itemid.ZBX_HOSTS_IPMI_PRIVILEGE},
	{"ipmi_disable_until", itemid.ZBX_HOSTS_IPMI_DISABLE_UNTIL},
	{"ipmi_available", itemid.ZBX_HOSTS_IPMI_AVAILABLE},
	{"ipmi_errors_from", itemid.ZBX_HOSTS_IPMI_ERRORS_FROM},
	{"snmp_disable_until", itemid.ZBX_HOSTS_SNMP_DISABLE_UNTIL},
	{"snmp_available", itemid.ZBX_HOSTS_SNMP_AVAILABLE},
	{"snmp_errors_from", itemid.ZBX_HOSTS_SNMP_ERRORS_FROM},
	{"maintenance_status", itemid.ZBX_HOSTS_MAINTENANCE_STATUS},
	{"maintenance_type", itemid.ZBX_HOSTS_MAINTENANCE_TYPE},
	{"maintenance_from", itemid.ZBX_HOSTS_MAINTENANCE_FROM},
	{"jmx_disable_until", itemid.ZBX_HOSTS_JMX_DISABLE_UNTIL},
	{"jmx_available", itemid.ZBX_HOSTS_JMX_AVAILABLE},
	{"jmx_errors_from", itemid.ZBX_HOSTS_JMX_ERRORS_FROM},
}

var hostStringFields = []fieldSpec{
	{"host", itemid.ZBX_HOSTS_HOST},
	{"error", itemid.ZBX_HOSTS_ERROR},
	{"ipmi_username", itemid.ZBX_HOSTS_IPMI_USERNAME},
	{"ipmi_password", itemid.ZBX_HOSTS_IPMI_PASSWORD},
	{"ipmi_error", itemid.ZBX_HOSTS_IPMI_ERROR},
	{"snmp_error", itemid.ZBX_HOSTS_SNMP_ERROR},
	{"jmx_error", itemid.ZBX_HOSTS_JMX_ERROR},
	{"name", itemid.ZBX_HOSTS_NAME},
}

// Host parses the index-th element of the current array (host.get
// "result") into an IR group matching the host schema. Hosts have no
// derived columns: every field is read directly off the element.
func Host(r *jsonreader.Reader, index int) (*ir.Group, error) {
	if err := r.EnterElement(index); err != nil {
		return nil, err
	}
	defer r.LeaveElement()

	g := ir.NewGroup()

	for _, f := range hostUint64Fields {
		if _, err := pushUint64(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}
	for _, f := range hostIntFields {
		if err := pushInt(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}
	for _, f := range hostStringFields {
		if err := pushString(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}

	return g, nil
}
