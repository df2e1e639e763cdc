// Package itemid names the logical columns of the tabular intermediate
// representation. An ItemId is a compile-time constant identifying a
// domain column; it is stable across releases and never renumbered once
// released, since raw cache rows persist across process restarts.
package itemid

// ItemId identifies a single logical column within a group.
type ItemId int

const (
	// Trigger schema.
	ZBX_TRIGGERS_TRIGGERID ItemId = iota + 1000
	ZBX_TRIGGERS_EXPRESSION
	ZBX_TRIGGERS_DESCRIPTION
	ZBX_TRIGGERS_URL
	ZBX_TRIGGERS_STATUS
	ZBX_TRIGGERS_VALUE
	ZBX_TRIGGERS_PRIORITY
	ZBX_TRIGGERS_LASTCHANGE
	ZBX_TRIGGERS_COMMENTS
	ZBX_TRIGGERS_ERROR
	ZBX_TRIGGERS_TEMPLATEID
	ZBX_TRIGGERS_TYPE
	ZBX_TRIGGERS_VALUE_FLAGS
	ZBX_TRIGGERS_FLAGS
	ZBX_TRIGGERS_HOSTID // derived: first element of nested "hosts"
)

const (
	// Item schema.
	ZBX_ITEMS_ITEMID ItemId = iota + 2000
	ZBX_ITEMS_TYPE
	ZBX_ITEMS_SNMP_COMMUNITY
	ZBX_ITEMS_SNMP_OID
	ZBX_ITEMS_HOSTID
	ZBX_ITEMS_NAME
	ZBX_ITEMS_KEY_
	ZBX_ITEMS_DELAY
	ZBX_ITEMS_HISTORY
	ZBX_ITEMS_TRENDS
	ZBX_ITEMS_LASTVALUE
	ZBX_ITEMS_LASTCLOCK
	ZBX_ITEMS_PREVVALUE
	ZBX_ITEMS_STATUS
	ZBX_ITEMS_VALUE_TYPE
	ZBX_ITEMS_TRAPPER_HOSTS
	ZBX_ITEMS_UNITS
	ZBX_ITEMS_MULTIPLIER
	ZBX_ITEMS_DELTA
	ZBX_ITEMS_PREVORGVALUE
	ZBX_ITEMS_SNMPV3_SECURITYNAME
	ZBX_ITEMS_SNMPV3_SECURITYLEVEL
	ZBX_ITEMS_SNMPV3_AUTHPASSPHRASE
	ZBX_ITEMS_SNMPV3_PRIVPASSPHRASE
	ZBX_ITEMS_FORMULA
	ZBX_ITEMS_ERROR
	ZBX_ITEMS_LASTLOGSIZE
	ZBX_ITEMS_LOGTIMEFMT
	ZBX_ITEMS_TEMPLATEID
	ZBX_ITEMS_VALUEMAPID
	ZBX_ITEMS_DELAY_FLEX
	ZBX_ITEMS_PARAMS
	ZBX_ITEMS_IPMI_SENSOR
	ZBX_ITEMS_DATA_TYPE
	ZBX_ITEMS_AUTHTYPE
	ZBX_ITEMS_USERNAME
	ZBX_ITEMS_PASSWORD
	ZBX_ITEMS_PUBLICKEY
	ZBX_ITEMS_PRIVATEKEY
	ZBX_ITEMS_MTIME
	ZBX_ITEMS_LASTNS
	ZBX_ITEMS_FLAGS
	ZBX_ITEMS_FILTER
	ZBX_ITEMS_INTERFACEID
	ZBX_ITEMS_PORT
	ZBX_ITEMS_DESCRIPTION
	ZBX_ITEMS_INVENTORY_LINK
	ZBX_ITEMS_LIFETIME
	ZBX_ITEMS_APPLICATIONID // derived: first element of nested "applications"
)

const (
	// Host schema.
	ZBX_HOSTS_HOSTID ItemId = iota + 3000
	ZBX_HOSTS_PROXY_HOSTID
	ZBX_HOSTS_HOST
	ZBX_HOSTS_STATUS
	ZBX_HOSTS_DISABLE_UNTIL
	ZBX_HOSTS_ERROR
	ZBX_HOSTS_AVAILABLE
	ZBX_HOSTS_ERRORS_FROM
	ZBX_HOSTS_LASTACCESS
	ZBX_HOSTS_IPMI_AUTHTYPE
	ZBX_HOSTS_IPMI_PRIVILEGE
	ZBX_HOSTS_IPMI_USERNAME
	ZBX_HOSTS_IPMI_PASSWORD
	ZBX_HOSTS_IPMI_DISABLE_UNTIL
	ZBX_HOSTS_IPMI_AVAILABLE
	ZBX_HOSTS_IPMI_ERRORS_FROM
	ZBX_HOSTS_IPMI_ERROR
	ZBX_HOSTS_SNMP_DISABLE_UNTIL
	ZBX_HOSTS_SNMP_AVAILABLE
	ZBX_HOSTS_SNMP_ERRORS_FROM
	ZBX_HOSTS_SNMP_ERROR
	ZBX_HOSTS_MAINTENANCEID
	ZBX_HOSTS_MAINTENANCE_STATUS
	ZBX_HOSTS_MAINTENANCE_TYPE
	ZBX_HOSTS_MAINTENANCE_FROM
	ZBX_HOSTS_JMX_DISABLE_UNTIL
	ZBX_HOSTS_JMX_AVAILABLE
	ZBX_HOSTS_JMX_ERRORS_FROM
	ZBX_HOSTS_JMX_ERROR
	ZBX_HOSTS_NAME
)

const (
	// Application schema.
	ZBX_APPLICATIONS_APPLICATIONID ItemId = iota + 4000
	ZBX_APPLICATIONS_HOSTID
	ZBX_APPLICATIONS_NAME
	ZBX_APPLICATIONS_TEMPLATEID
)

const (
	// Event schema.
	ZBX_EVENTS_EVENTID ItemId = iota + 5000
	ZBX_EVENTS_SOURCE
	ZBX_EVENTS_OBJECT
	ZBX_EVENTS_OBJECTID
	ZBX_EVENTS_CLOCK
	ZBX_EVENTS_VALUE
	ZBX_EVENTS_ACKNOWLEDGED
	ZBX_EVENTS_NS
	ZBX_EVENTS_VALUE_CHANGED
)
