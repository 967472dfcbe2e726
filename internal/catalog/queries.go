package catalog

// GraphQL documents sent downstream, one per tool. Variables are bound from
// the effective arguments by name.

const entityLookupQuery = `query entityLookup($accountID: ID!, $type: EntityType!, $search: String, $limit: Int) {
  entityLookup(accountID: $accountID, type: $type, search: $search, limit: $limit) {
    total
    items {
      entity { id name type }
      description
    }
  }
}`

const accountSnapshotQuery = `query accountSnapshot($accountID: ID!, $siteIDs: [ID!], $userIDs: [ID!]) {
  accountSnapshot(accountID: $accountID) {
    id
    timestamp
    sites(siteIDs: $siteIDs) {
      id
      connectivityStatus
      haStatus { readiness wanConnectivity }
      info { name type region countryName }
      devices { id name connected version }
    }
    users(userIDs: $userIDs) {
      id
      connectivityStatus
      info { name email osType clientVersion }
    }
  }
}`

const accountMetricsQuery = `query accountMetrics($accountID: ID!, $timeFrame: TimeFrame!, $siteIDs: [ID!], $userIDs: [ID!], $groupInterfaces: Boolean, $groupDevices: Boolean) {
  accountMetrics(accountID: $accountID, timeFrame: $timeFrame, groupInterfaces: $groupInterfaces, groupDevices: $groupDevices) {
    id
    from
    to
    sites(siteIDs: $siteIDs) {
      id
      metrics { bytesUpstream bytesDownstream packetLossPercent latencyMs }
      interfaces {
        name
        metrics { bytesUpstream bytesDownstream packetLossPercent latencyMs }
      }
    }
    users(userIDs: $userIDs) {
      id
      metrics { bytesUpstream bytesDownstream packetLossPercent latencyMs }
    }
  }
}`

const auditFeedQuery = `query auditFeed($accountID: ID!, $timeFrame: TimeFrame!, $filters: [AuditFieldFilterInput!], $marker: String) {
  auditFeed(accountIDs: [$accountID], timeFrame: $timeFrame, filters: $filters, marker: $marker) {
    from
    to
    hasMore
    marker
    fetchedCount
    accounts {
      id
      records {
        time
        admin { name }
        object { id name type }
        fieldName
        valueBefore
        valueAfter
      }
    }
  }
}`

const appStatsQuery = `query appStats($accountID: ID!, $timeFrame: TimeFrame!, $siteIDs: [ID!], $limit: Int) {
  appStats(accountID: $accountID, timeFrame: $timeFrame, siteIDs: $siteIDs, limit: $limit) {
    from
    to
    records {
      application
      category
      risk
      traffic
      upstream
      downstream
      flowCount
    }
  }
}`

const siteTrafficQuery = `query topSites($accountID: ID!, $timeFrame: TimeFrame!, $siteIDs: [ID!]) {
  accountMetrics(accountID: $accountID, timeFrame: $timeFrame) {
    id
    from
    to
    sites(siteIDs: $siteIDs) {
      id
      info { name }
      metrics { bytesUpstream bytesDownstream }
    }
  }
}`

const userTrafficQuery = `query topUsers($accountID: ID!, $timeFrame: TimeFrame!, $userIDs: [ID!]) {
  accountMetrics(accountID: $accountID, timeFrame: $timeFrame) {
    id
    from
    to
    users(userIDs: $userIDs) {
      id
      name
      metrics { bytesUpstream bytesDownstream }
    }
  }
}`

const siteTimeseriesQuery = `query siteTimeseries($accountID: ID!, $timeFrame: TimeFrame!, $siteIDs: [ID!], $buckets: Int!, $labels: [TimeseriesMetricType!]!, $groupInterfaces: Boolean, $groupDevices: Boolean) {
  accountMetrics(accountID: $accountID, timeFrame: $timeFrame, groupInterfaces: $groupInterfaces, groupDevices: $groupDevices) {
    id
    from
    to
    sites(siteIDs: $siteIDs) {
      id
      info { name }
      timeseries(buckets: $buckets, labels: $labels) { label units data }
      interfaces {
        name
        timeseries(buckets: $buckets, labels: $labels) { label units data }
      }
    }
  }
}`

const siteGroupQuery = `query siteGroups($accountID: ID!, $timeFrame: TimeFrame!, $siteIDs: [ID!]) {
  accountMetrics(accountID: $accountID, timeFrame: $timeFrame) {
    id
    from
    to
    sites(siteIDs: $siteIDs) {
      id
      info { name type region countryName connectivityStatus }
      metrics { bytesUpstream bytesDownstream hostCount hostLimit packetLossPercent latencyMs }
    }
  }
}`

const interfaceGroupQuery = `query interfaceGroups($accountID: ID!, $timeFrame: TimeFrame!, $siteIDs: [ID!], $groupInterfaces: Boolean) {
  accountMetrics(accountID: $accountID, timeFrame: $timeFrame, groupInterfaces: $groupInterfaces) {
    id
    from
    to
    sites(siteIDs: $siteIDs) {
      id
      info { name }
      interfaces {
        name
        info { role connectionType }
        metrics { bytesUpstream bytesDownstream packetLossPercent latencyMs }
      }
    }
  }
}`

const userGroupQuery = `query userGroups($accountID: ID!, $timeFrame: TimeFrame!, $userIDs: [ID!]) {
  accountMetrics(accountID: $accountID, timeFrame: $timeFrame) {
    id
    from
    to
    users(userIDs: $userIDs) {
      id
      name
      info { role osType connectivityStatus siteName }
      metrics { bytesUpstream bytesDownstream packetLossPercent latencyMs }
    }
  }
}`

const interfaceEventsQuery = `query interfaceEvents($accountID: ID!, $timeFrame: TimeFrame!, $siteIDs: [ID!]) {
  eventsFeed(accountIDs: [$accountID], timeFrame: $timeFrame, siteIDs: $siteIDs) {
    from
    to
    records {
      time
      fields { eventType eventSubType siteID siteName interfaceName }
    }
  }
}`
