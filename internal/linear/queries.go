package linear

// issueFields is the shared selection set for issue records. It matches the
// snapshot schema: everything here ends up in the JSON export verbatim.
const issueFields = `
      id
      identifier
      title
      description
      url
      number
      state { id name type color }
      priority
      priorityLabel
      estimate
      dueDate
      createdAt
      updatedAt
      completedAt
      canceledAt
      archivedAt
      labels { nodes { id name color } }
      team { id name key }
      project { id name }
      cycle { id name number }
      assignee { id name email displayName }
      creator { id name email }
      subscribers { nodes { id name email displayName } }
      parent { id identifier title }
      children { nodes { id identifier title } }`

const customViewQuery = `query GetCustomView($viewId: String!) {
  customView(id: $viewId) {
    id
    name
    description
    icon
    color
    createdAt
    updatedAt
    team { id name key }
    creator { id name email }
  }
}`

const viewIssuesQuery = `query GetViewIssues($viewId: String!, $first: Int!, $after: String) {
  customView(id: $viewId) {
    id
    issues(first: $first, after: $after) {
      pageInfo { hasNextPage endCursor }
      nodes {` + issueFields + `
      }
    }
  }
}`

const labeledIssuesQuery = `query GetLabeledIssues($label: String!, $first: Int!, $after: String) {
  issues(filter: { labels: { name: { eq: $label } } }, first: $first, after: $after) {
    pageInfo { hasNextPage endCursor }
    nodes {` + issueFields + `
    }
  }
}`

const teamLabelsQuery = `query GetTeamLabels($teamId: String!) {
  team(id: $teamId) {
    labels { nodes { id name color } }
  }
}`

const workspaceLabelsQuery = `query GetWorkspaceLabels {
  viewer {
    organization {
      labels { nodes { id name color } }
    }
  }
}`

const issueLabelsQuery = `query GetIssueLabels($issueId: String!) {
  issue(id: $issueId) {
    id
    labels { nodes { id name color } }
  }
}`

const addLabelMutation = `mutation AddLabelToIssue($issueId: String!, $labelId: String!) {
  issueAddLabel(id: $issueId, labelId: $labelId) {
    success
    issue {
      id
      labels { nodes { id name color } }
    }
  }
}`

const removeLabelMutation = `mutation RemoveLabelFromIssue($issueId: String!, $labelId: String!) {
  issueRemoveLabel(id: $issueId, labelId: $labelId) {
    success
    issue {
      id
      labels { nodes { id name color } }
    }
  }
}`
