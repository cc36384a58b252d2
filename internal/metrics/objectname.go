package metrics

import (
	"fmt"
	"strings"
)

// metricsDomain is the object-name domain all node metrics live under.
const metricsDomain = "org.apache.cassandra.metrics"

// OperatingSystemObjectName addresses the host OS attributes of the JVM
// the node runs in.
const OperatingSystemObjectName = "java.lang:type=OperatingSystem"

// ClientObjectName addresses a client-connection gauge.
func ClientObjectName(name string) string {
	return fmt.Sprintf("%s:type=Client,name=%s", metricsDomain, name)
}

// TableObjectName addresses a table (column family) metric. A table name
// containing a dot addresses a secondary index and lives under the
// IndexColumnFamily type instead.
func TableObjectName(keyspace, table, name string) string {
	cfType := "ColumnFamily"
	if strings.Contains(table, ".") {
		cfType = "IndexColumnFamily"
	}
	return fmt.Sprintf("%s:type=%s,keyspace=%s,scope=%s,name=%s", metricsDomain, cfType, keyspace, table, name)
}

// CompactionObjectName addresses a compaction metric.
func CompactionObjectName(name string) string {
	return fmt.Sprintf("%s:type=Compaction,name=%s", metricsDomain, name)
}

// StorageObjectName addresses a storage counter.
func StorageObjectName(name string) string {
	return fmt.Sprintf("%s:type=Storage,name=%s", metricsDomain, name)
}
