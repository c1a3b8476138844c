// Package output writes difference records.
//
// Every output has the same flat layout: OID_1, OID_2, CHANGE_TYPE, one
// 0/1 flag column per field map and an optional SHAPE code. Tables receive
// one row per record; files and objects receive one JSON object per line
// with keys in column order.
package output
