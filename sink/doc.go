/*
Package sink provides registry.EventSink implementations.

Events are wrapped in an Envelope that carries the block position and a
unique id and are published as JSON. Recorder keeps the envelopes in memory,
LogSink writes them to a logger, KafkaSink produces them to a Kafka topic
and RedisSink publishes them on a Redis channel. Multi fans out to many
sinks.
*/
package sink
