/*
Package queue defines tasks to be performed to grow a tree
as well as an in-memory first-in first-out Queue to manage them.
*/
package queue
