/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* Models are stored under the bucket prefix followed by the model key.
* Easy queries for one model and iteration over the bucket.
*/
package orm
