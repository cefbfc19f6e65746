package driver

const (
	SaveRunQuery = `
		MERGE (r:ReconciliationRun {uuid: $uuid})
		SET r.created_at = $created_at,
			r.result_count = $result_count,
			r.average_confidence = $average_confidence
		RETURN r.uuid AS uuid
	`

	SaveRecordQuery = `
		MERGE (n:Record {key: $key})
		SET n.id = $id,
			n.source_id = $source_id,
			n.fields = $fields
		RETURN n.key AS key
	`

	SaveMatchQuery = `
		MATCH (run:ReconciliationRun {uuid: $run_uuid})
		MATCH (source:Record {key: $source_key})
		MATCH (target:Record {key: $target_key})
		MERGE (source)-[m:MATCHES {run_uuid: $run_uuid}]->(target)
		SET m.confidence = $confidence,
			m.match_kind = $match_kind,
			m.matching_fields = $matching_fields,
			m.created_at = $created_at
		MERGE (run)-[:PRODUCED]->(source)
		RETURN m.run_uuid AS run_uuid
	`

	GetRunMatchesQuery = `
		MATCH (source:Record)-[m:MATCHES {run_uuid: $run_uuid}]->(target:Record)
		RETURN source.key AS source_key,
			target.key AS target_key,
			m.confidence AS confidence,
			m.match_kind AS match_kind
		ORDER BY source_key, target_key
	`

	GetRecordMatchesQuery = `
		MATCH (source:Record {key: $key})-[m:MATCHES]->(target:Record)
		RETURN m.run_uuid AS run_uuid,
			source.key AS source_key,
			target.key AS target_key,
			m.confidence AS confidence,
			m.match_kind AS match_kind
		ORDER BY m.created_at DESC
	`

	DeleteRunQuery = `
		MATCH ()-[m:MATCHES {run_uuid: $run_uuid}]->()
		DELETE m
		WITH count(*) AS removed
		MATCH (r:ReconciliationRun {uuid: $run_uuid})
		DETACH DELETE r
		RETURN removed
	`
)
